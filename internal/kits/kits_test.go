package kits

import (
	"testing"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/pack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries() []models.PackageEntry {
	return []models.PackageEntry{
		{ResourceItem: models.ResourceItem{ID: "water-1", Name: "Water"}, Quantity: 2},
		{ResourceItem: models.ResourceItem{ID: "food-1", Name: "Food Kit"}, Quantity: 1},
	}
}

func TestSaveKitRejectsBlankNameAndEmptyResources(t *testing.T) {
	store := NewStore()

	assert.False(t, store.SaveKit("", entries()))
	assert.False(t, store.SaveKit("   ", entries()))
	assert.False(t, store.SaveKit("Family Kit", nil))
	assert.Equal(t, 0, store.Len())
}

func TestSaveKitTrimsName(t *testing.T) {
	store := NewStore()

	require.True(t, store.SaveKit("  Family Kit  ", entries()))
	kits := store.Kits()
	require.Len(t, kits, 1)
	assert.Equal(t, "Family Kit", kits[0].Name)
}

func TestDuplicateNamesAllowed(t *testing.T) {
	store := NewStore()

	require.True(t, store.SaveKit("Kit", entries()))
	require.True(t, store.SaveKit("Kit", entries()))
	assert.Equal(t, 2, store.Len())
}

func TestKitImmuneToLaterPackageMutation(t *testing.T) {
	pkg := pack.NewStore()
	pkg.AddResource(models.ResourceItem{ID: "water-1", Name: "Water"})
	pkg.AddResource(models.ResourceItem{ID: "water-1", Name: "Water"})
	pkg.AddResource(models.ResourceItem{ID: "food-1", Name: "Food Kit"})

	store := NewStore()
	require.True(t, store.SaveKit("Emergency", pkg.Entries()))

	pkg.UpdateQuantity("water-1", 9)
	pkg.RemoveResource("food-1")
	pkg.AddResource(models.ResourceItem{ID: "med-1", Name: "First Aid"})
	pkg.ClearPackage()

	kits := store.Kits()
	require.Len(t, kits, 1)
	require.Len(t, kits[0].Resources, 2)
	assert.Equal(t, "water-1", kits[0].Resources[0].ID)
	assert.Equal(t, 2, kits[0].Resources[0].Quantity)
	assert.Equal(t, "food-1", kits[0].Resources[1].ID)
	assert.Equal(t, 1, kits[0].Resources[1].Quantity)
}

func TestKitsReturnsCopies(t *testing.T) {
	store := NewStore()
	require.True(t, store.SaveKit("Kit", entries()))

	kits := store.Kits()
	kits[0].Resources[0].Quantity = 99

	fresh := store.Kits()
	assert.Equal(t, 2, fresh[0].Resources[0].Quantity)
}

func TestDeleteKit(t *testing.T) {
	store := NewStore()
	require.True(t, store.SaveKit("First", entries()))
	require.True(t, store.SaveKit("Second", entries()))

	assert.False(t, store.DeleteKit(-1))
	assert.False(t, store.DeleteKit(2))
	assert.True(t, store.DeleteKit(0))

	kits := store.Kits()
	require.Len(t, kits, 1)
	assert.Equal(t, "Second", kits[0].Name)
}

package pack

import (
	"testing"

	"relief-coordinator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func water() models.ResourceItem {
	return models.ResourceItem{
		ID:     "water-1",
		Name:   "Water",
		Status: models.StatusAvailable,
	}
}

func TestAddResourceMergesByID(t *testing.T) {
	store := NewStore()

	q := store.AddResource(water())
	assert.Equal(t, 1, q)

	q = store.AddResource(water())
	assert.Equal(t, 2, q)

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "water-1", entries[0].ID)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 2, store.TotalItems())
}

func TestAddResourceClampsAtMax(t *testing.T) {
	store := NewStore()

	for i := 0; i < 15; i++ {
		store.AddResource(water())
	}

	assert.Equal(t, models.MaxQuantity, store.ResourceQuantity("water-1"))
	assert.Equal(t, models.MaxQuantity, store.TotalItems())

	// further adds stay a no-op, not an error
	q := store.AddResource(water())
	assert.Equal(t, models.MaxQuantity, q)
}

func TestAddResourcePreservesInsertionOrder(t *testing.T) {
	store := NewStore()

	store.AddResource(models.ResourceItem{ID: "water-1", Name: "Water"})
	store.AddResource(models.ResourceItem{ID: "food-1", Name: "Food Kit"})
	store.AddResource(models.ResourceItem{ID: "med-1", Name: "First Aid"})
	store.AddResource(models.ResourceItem{ID: "water-1", Name: "Water"})

	entries := store.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "water-1", entries[0].ID)
	assert.Equal(t, "food-1", entries[1].ID)
	assert.Equal(t, "med-1", entries[2].ID)
}

func TestUpdateQuantityBounds(t *testing.T) {
	store := NewStore()
	store.AddResource(water())

	store.UpdateQuantity("water-1", 5)
	assert.Equal(t, 5, store.ResourceQuantity("water-1"))

	store.UpdateQuantity("water-1", 0)
	assert.Equal(t, 5, store.ResourceQuantity("water-1"))

	store.UpdateQuantity("water-1", 11)
	assert.Equal(t, 5, store.ResourceQuantity("water-1"))

	store.UpdateQuantity("water-1", -3)
	assert.Equal(t, 5, store.ResourceQuantity("water-1"))

	// unknown id is ignored, no panic, no state change
	store.UpdateQuantity("no-such-id", 3)
	assert.Equal(t, 5, store.TotalItems())
}

func TestRemoveResource(t *testing.T) {
	store := NewStore()
	store.AddResource(water())
	store.AddResource(water())

	store.RemoveResource("water-1")
	assert.False(t, store.IsInPackage("water-1"))
	assert.Equal(t, 0, store.TotalItems())
	assert.Empty(t, store.Entries())

	// absent id is a silent no-op
	store.RemoveResource("water-1")
	assert.Equal(t, 0, store.TotalItems())
}

func TestClearPackage(t *testing.T) {
	store := NewStore()
	store.AddResource(water())
	store.AddResource(models.ResourceItem{ID: "food-1", Name: "Food Kit"})

	store.ClearPackage()
	assert.Equal(t, 0, store.TotalItems())
	assert.Empty(t, store.Entries())
}

func TestTotalItemsSumsQuantities(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.TotalItems())

	store.AddResource(water())
	store.AddResource(water())
	store.AddResource(models.ResourceItem{ID: "food-1", Name: "Food Kit"})
	store.UpdateQuantity("food-1", 4)

	assert.Equal(t, 6, store.TotalItems())
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	store := NewStore()

	var calls [][]models.PackageEntry
	store.Subscribe(func(entries []models.PackageEntry) {
		calls = append(calls, entries)
	})

	otherNotified := 0
	store.Subscribe(func([]models.PackageEntry) {
		otherNotified++
	})

	store.AddResource(water())
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0][0].Quantity)
	assert.Equal(t, 1, otherNotified)

	store.UpdateQuantity("water-1", 3)
	require.Len(t, calls, 2)
	assert.Equal(t, 3, calls[1][0].Quantity)

	store.RemoveResource("water-1")
	require.Len(t, calls, 3)
	assert.Empty(t, calls[2])

	// ignored mutations do not notify
	store.UpdateQuantity("water-1", 99)
	store.RemoveResource("water-1")
	assert.Len(t, calls, 3)
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AddResource(water())

	entries := store.Entries()
	entries[0].Quantity = 99

	assert.Equal(t, 1, store.ResourceQuantity("water-1"))
}

func TestAddRemoveScenario(t *testing.T) {
	store := NewStore()

	q := store.AddResource(water())
	assert.Equal(t, 1, q)

	q = store.AddResource(water())
	assert.Equal(t, 2, q)
	assert.Equal(t, 2, store.TotalItems())

	store.RemoveResource("water-1")
	assert.Empty(t, store.Entries())
	assert.Equal(t, 0, store.TotalItems())
}

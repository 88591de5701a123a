package order

import (
	"testing"

	"relief-coordinator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentOrderEmptyBeforeSubmission(t *testing.T) {
	current := NewCurrentOrder()
	_, ok := current.Order()
	assert.False(t, ok)
}

func TestCurrentOrderLastWriteWins(t *testing.T) {
	current := NewCurrentOrder()

	current.SetOrder(&models.OrderResult{ID: "ORD-1"})
	current.SetOrder(&models.OrderResult{ID: "ORD-2", Pending: true})

	held, ok := current.Order()
	require.True(t, ok)
	assert.Equal(t, "ORD-2", held.ID)
	assert.True(t, held.Pending)
}

func TestCurrentOrderReturnsCopy(t *testing.T) {
	current := NewCurrentOrder()
	current.SetOrder(&models.OrderResult{ID: "ORD-1"})

	held, _ := current.Order()
	held.ID = "mutated"

	fresh, _ := current.Order()
	assert.Equal(t, "ORD-1", fresh.ID)
}

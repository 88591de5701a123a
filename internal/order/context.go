package order

import (
	"sync"

	"relief-coordinator/internal/models"
)

// CurrentOrder holds the most recently placed order for the session.
// Last write wins; there is no history and no per-user partitioning.
type CurrentOrder struct {
	mu    sync.Mutex
	order *models.OrderResult
}

// NewCurrentOrder creates an empty holder
func NewCurrentOrder() *CurrentOrder {
	return &CurrentOrder{}
}

// SetOrder replaces the held order unconditionally
func (c *CurrentOrder) SetOrder(result *models.OrderResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = result
}

// Order returns the most recent result; ok is false before any submission.
// The returned value is a copy so callers cannot mutate the held order.
func (c *CurrentOrder) Order() (models.OrderResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return models.OrderResult{}, false
	}
	return *c.order, true
}

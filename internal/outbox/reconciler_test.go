package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	entries []Entry
}

func (q *memQueue) Pending(_ context.Context, max int) ([]Entry, error) {
	if len(q.entries) < max {
		max = len(q.entries)
	}
	out := make([]Entry, max)
	copy(out, q.entries[:max])
	return out, nil
}

func (q *memQueue) Remove(_ context.Context, entry Entry) error {
	for i := range q.entries {
		if q.entries[i].LocalID == entry.LocalID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("entry not found")
}

type scriptedAPI struct {
	outcomes map[string]error
	calls    int
}

func (a *scriptedAPI) CreateOrder(_ context.Context, req *models.OrderRequest, opts order.CreateOptions) (*models.OrderResult, error) {
	a.calls++
	if err, ok := a.outcomes[req.Name]; ok && err != nil {
		return nil, err
	}
	return &models.OrderResult{ID: "ORD-" + req.Name, Status: models.OrderStatusConfirmed}, nil
}

func entry(localID, name string) Entry {
	return Entry{
		LocalID:  localID,
		Request:  models.OrderRequest{Name: name, Urgency: models.UrgencyMedium},
		QueuedAt: time.Now(),
	}
}

func TestRunOnceReconcilesAndDropsEntries(t *testing.T) {
	queue := &memQueue{entries: []Entry{entry("OFFLINE-1", "a"), entry("OFFLINE-2", "b")}}
	api := &scriptedAPI{}
	r := NewReconciler(queue, api, nil, time.Minute, 10)

	r.RunOnce(context.Background())

	assert.Empty(t, queue.entries)
	assert.Equal(t, 2, api.calls)
}

func TestRunOnceStopsPassWhenBackendStillDown(t *testing.T) {
	queue := &memQueue{entries: []Entry{entry("OFFLINE-1", "a"), entry("OFFLINE-2", "b")}}
	api := &scriptedAPI{outcomes: map[string]error{
		"a": &order.TransportError{Err: errors.New("connection refused")},
	}}
	r := NewReconciler(queue, api, nil, time.Minute, 10)

	r.RunOnce(context.Background())

	// nothing removed, second entry not even attempted
	require.Len(t, queue.entries, 2)
	assert.Equal(t, 1, api.calls)
}

func TestRunOnceDropsRejectedEntries(t *testing.T) {
	queue := &memQueue{entries: []Entry{entry("OFFLINE-1", "a"), entry("OFFLINE-2", "b")}}
	api := &scriptedAPI{outcomes: map[string]error{
		"a": &order.BusinessError{StatusCode: 422, Message: "invalid"},
	}}
	r := NewReconciler(queue, api, nil, time.Minute, 10)

	r.RunOnce(context.Background())

	// rejected entry dropped, the other reconciled
	assert.Empty(t, queue.entries)
	assert.Equal(t, 2, api.calls)
}

func TestRunOnceHonorsBatchSize(t *testing.T) {
	queue := &memQueue{entries: []Entry{entry("OFFLINE-1", "a"), entry("OFFLINE-2", "b"), entry("OFFLINE-3", "c")}}
	api := &scriptedAPI{}
	r := NewReconciler(queue, api, nil, time.Minute, 2)

	r.RunOnce(context.Background())

	assert.Len(t, queue.entries, 1)
	assert.Equal(t, 2, api.calls)
}

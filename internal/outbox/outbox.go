package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/redisclient"
	"relief-coordinator/internal/util"

	"go.uber.org/zap"
)

// Entry is a durable record of an offline-acknowledged order awaiting
// reconciliation with the server.
type Entry struct {
	LocalID  string              `json:"local_id"`
	Request  models.OrderRequest `json:"request"`
	QueuedAt time.Time           `json:"queued_at"`
}

// Queue is the redis-backed outbox for offline orders
type Queue struct {
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewQueue creates an outbox over the given redis client
func NewQueue(redis *redisclient.Client) *Queue {
	return &Queue{
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// Append persists a pending offline order. Called by the submission
// pipeline right after the offline fallback produced its local ack.
func (q *Queue) Append(ctx context.Context, req *models.OrderRequest, result *models.OrderResult) error {
	entry := Entry{
		LocalID:  result.ID,
		Request:  *req,
		QueuedAt: time.Now(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox entry: %w", err)
	}

	if err := q.redis.EnqueueOrder(ctx, payload); err != nil {
		return err
	}

	q.updateDepth(ctx)
	q.logger.Info("Offline order queued for reconciliation",
		zap.String("local_id", entry.LocalID))
	return nil
}

// Pending returns up to max entries, oldest first, leaving them queued
func (q *Queue) Pending(ctx context.Context, max int) ([]Entry, error) {
	payloads, err := q.redis.PendingOrders(ctx, max)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(payloads))
	for _, payload := range payloads {
		var entry Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			q.logger.Error("Dropping undecodable outbox entry", zap.Error(err))
			_ = q.redis.RemoveOrder(ctx, payload)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Remove deletes a reconciled or rejected entry
func (q *Queue) Remove(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox entry: %w", err)
	}

	if err := q.redis.RemoveOrder(ctx, payload); err != nil {
		return err
	}

	q.updateDepth(ctx)
	return nil
}

func (q *Queue) updateDepth(ctx context.Context) {
	depth, err := q.redis.OutboxDepth(ctx)
	if err != nil {
		return
	}
	util.OutboxDepthGauge.Set(float64(depth))
}

package outbox

import (
	"context"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/order"
	"relief-coordinator/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source is the queue surface the reconciler consumes
type Source interface {
	Pending(ctx context.Context, max int) ([]Entry, error)
	Remove(ctx context.Context, entry Entry) error
}

// Events receives reconciliation outcomes
type Events interface {
	PublishOrderReconciled(ctx context.Context, event *models.OrderReconciledEvent) error
	PublishOrderFailed(ctx context.Context, event *models.OrderFailedEvent) error
}

// Reconciler periodically resubmits queued offline orders online. A
// transport failure ends the pass (the backend is still unreachable); a
// business rejection drops the entry since resubmitting a deterministic
// rejection cannot heal it.
type Reconciler struct {
	queue    Source
	api      order.API
	events   Events
	interval time.Duration
	batch    int
	logger   *zap.Logger
}

// NewReconciler creates a reconciliation worker
func NewReconciler(queue Source, api order.API, events Events, interval time.Duration, batch int) *Reconciler {
	return &Reconciler{
		queue:    queue,
		api:      api,
		events:   events,
		interval: interval,
		batch:    batch,
		logger:   util.GetLogger(),
	}
}

// Start runs reconciliation passes until ctx is cancelled
func (r *Reconciler) Start(ctx context.Context) error {
	r.logger.Info("Starting outbox reconciler",
		zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox reconciler stopping")
			return ctx.Err()
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single reconciliation pass
func (r *Reconciler) RunOnce(ctx context.Context) {
	entries, err := r.queue.Pending(ctx, r.batch)
	if err != nil {
		r.logger.Error("Failed to read outbox", zap.Error(err))
		return
	}

	for _, entry := range entries {
		result, err := r.api.CreateOrder(ctx, &entry.Request, order.CreateOptions{})
		if err != nil {
			if order.IsBusinessRejection(err) {
				r.logger.Warn("Queued order rejected by server, dropping",
					zap.String("local_id", entry.LocalID),
					zap.Error(err))
				util.OrdersFailedTotal.WithLabelValues("reconcile_rejected").Inc()
				if removeErr := r.queue.Remove(ctx, entry); removeErr != nil {
					r.logger.Error("Failed to drop rejected entry", zap.Error(removeErr))
				}
				r.publishFailed(ctx, entry.LocalID, err.Error())
				continue
			}

			// backend still unreachable, keep the rest for the next pass
			r.logger.Debug("Reconciliation attempt failed, backend unreachable",
				zap.String("local_id", entry.LocalID))
			return
		}

		if err := r.queue.Remove(ctx, entry); err != nil {
			r.logger.Error("Failed to remove reconciled entry",
				zap.String("local_id", entry.LocalID),
				zap.Error(err))
			continue
		}

		util.OutboxReconciledTotal.Inc()
		r.logger.Info("Offline order reconciled",
			zap.String("local_id", entry.LocalID),
			zap.String("order_id", result.ID))

		if r.events != nil {
			event := &models.OrderReconciledEvent{
				BaseEvent: models.BaseEvent{
					EventID:   uuid.New().String(),
					EventType: models.EventTypeOrderReconciled,
					Timestamp: time.Now(),
				},
				LocalID: entry.LocalID,
				OrderID: result.ID,
			}
			if err := r.events.PublishOrderReconciled(ctx, event); err != nil {
				r.logger.Error("Failed to publish OrderReconciled event", zap.Error(err))
			}
		}
	}
}

func (r *Reconciler) publishFailed(ctx context.Context, localID, reason string) {
	if r.events == nil {
		return
	}

	event := &models.OrderFailedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderFailed,
			Timestamp: time.Now(),
		},
		LocalID: localID,
		Reason:  reason,
	}
	if err := r.events.PublishOrderFailed(ctx, event); err != nil {
		r.logger.Error("Failed to publish OrderFailed event", zap.Error(err))
	}
}

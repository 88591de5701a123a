package broker

import (
	"context"
	"fmt"

	"relief-coordinator/internal/models"
)

// EventPublisher handles publishing order lifecycle events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderSubmitted publishes OrderSubmitted event
func (ep *EventPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	return ep.producer.PublishEvent(ctx, orderKey(event.OrderID), event)
}

// PublishOrderPendingOffline publishes OrderPendingOffline event
func (ep *EventPublisher) PublishOrderPendingOffline(ctx context.Context, event *models.OrderPendingOfflineEvent) error {
	return ep.producer.PublishEvent(ctx, orderKey(event.LocalID), event)
}

// PublishOrderReconciled publishes OrderReconciled event
func (ep *EventPublisher) PublishOrderReconciled(ctx context.Context, event *models.OrderReconciledEvent) error {
	return ep.producer.PublishEvent(ctx, orderKey(event.LocalID), event)
}

// PublishOrderFailed publishes OrderFailed event
func (ep *EventPublisher) PublishOrderFailed(ctx context.Context, event *models.OrderFailedEvent) error {
	key := event.LocalID
	if key == "" {
		key = event.EventID
	}
	return ep.producer.PublishEvent(ctx, orderKey(key), event)
}

func orderKey(id string) string {
	return fmt.Sprintf("order-%s", id)
}

package order

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/pack"
	"relief-coordinator/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Events receives order lifecycle events. Publishing failures are logged
// and never fail a submission.
type Events interface {
	PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error
	PublishOrderPendingOffline(ctx context.Context, event *models.OrderPendingOfflineEvent) error
	PublishOrderFailed(ctx context.Context, event *models.OrderFailedEvent) error
}

// Outbox persists offline acknowledgments for later reconciliation
type Outbox interface {
	Append(ctx context.Context, req *models.OrderRequest, result *models.OrderResult) error
}

// FormValues are the raw field values captured at the form layer. The
// form validates mandatory fields; the pipeline forwards whatever it is
// given, blank or not.
type FormValues struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Urgency    string `json:"urgency"`
	CardNumber string `json:"card_number"`
}

// BuildOrderRequest assembles the submission payload. Urgency defaults to
// medium and only the card's last four digits survive into the request.
func BuildOrderRequest(form FormValues, items []models.PackageEntry, isPackage bool) models.OrderRequest {
	urgency := form.Urgency
	if urgency == "" {
		urgency = models.UrgencyMedium
	}

	return models.OrderRequest{
		Name:      form.Name,
		Address:   form.Address,
		Phone:     form.Phone,
		Email:     form.Email,
		Urgency:   urgency,
		Payment:   models.PaymentInfo{CardLast4: cardLast4(form.CardNumber), Type: "demo-card"},
		Items:     items,
		IsPackage: isPackage,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func cardLast4(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)

	if len(digits) < 4 {
		// demo payment data; the form may legitimately be blank here
		return "1234"
	}
	return digits[len(digits)-4:]
}

// Pipeline turns form values plus a resolved item list into a submitted
// order: one online attempt, then at most one offline fallback when the
// online attempt failed at the transport level.
type Pipeline struct {
	api      API
	pkg      *pack.Store
	current  *CurrentOrder
	outbox   Outbox
	events   Events
	inFlight atomic.Bool
	logger   *zap.Logger
}

// NewPipeline creates a submission pipeline
func NewPipeline(api API, pkg *pack.Store, current *CurrentOrder, outbox Outbox, events Events) *Pipeline {
	return &Pipeline{
		api:     api,
		pkg:     pkg,
		current: current,
		outbox:  outbox,
		events:  events,
		logger:  util.GetLogger(),
	}
}

// Submit runs the full submission sequence. A second call before the
// first resolves returns ErrSubmissionInFlight without touching the
// network. On any failure the package and the current order are left
// exactly as they were.
func (p *Pipeline) Submit(ctx context.Context, form FormValues, items []models.PackageEntry, isPackage bool) (*models.OrderResult, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer p.inFlight.Store(false)

	ctx, span := util.StartSpan(ctx, "Pipeline.Submit")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderSubmitLatency.Observe(time.Since(start).Seconds())
	}()

	req := BuildOrderRequest(form, items, isPackage)

	result, err := p.api.CreateOrder(ctx, &req, CreateOptions{})
	if err != nil {
		if IsBusinessRejection(err) {
			util.OrdersFailedTotal.WithLabelValues("business_rejection").Inc()
			p.publishFailed(ctx, "", err)
			return nil, err
		}

		p.logger.Warn("Online submission failed, retrying in offline mode", zap.Error(err))

		result, err = p.api.CreateOrder(ctx, &req, CreateOptions{Offline: true})
		if err != nil {
			util.OrdersFailedTotal.WithLabelValues("offline_fallback_failed").Inc()
			p.publishFailed(ctx, "", err)
			return nil, fmt.Errorf("offline fallback failed: %w", err)
		}
	}

	p.complete(ctx, &req, result, isPackage)
	return result, nil
}

// RetrySubmit is the manual recovery path: a single attempt in the
// requested mode, no fallback chain, built from a minimal payload of the
// currently-displayed field values. It never clears the package.
func (p *Pipeline) RetrySubmit(ctx context.Context, form FormValues, items []models.PackageEntry, offline bool) (*models.OrderResult, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer p.inFlight.Store(false)

	ctx, span := util.StartSpan(ctx, "Pipeline.RetrySubmit")
	defer span.End()

	req := BuildOrderRequest(form, items, false)

	result, err := p.api.CreateOrder(ctx, &req, CreateOptions{Offline: offline})
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("retry_failed").Inc()
		p.publishFailed(ctx, "", err)
		return nil, err
	}

	p.complete(ctx, &req, result, false)
	return result, nil
}

// complete records the result and notifies downstream consumers. Order of
// effects: current order first, then package clear, then events, so a
// confirmation view reading the context right after Submit returns always
// sees the result.
func (p *Pipeline) complete(ctx context.Context, req *models.OrderRequest, result *models.OrderResult, isPackage bool) {
	p.current.SetOrder(result)

	if isPackage {
		p.pkg.ClearPackage()
	}

	if result.Pending {
		util.OrdersOfflineTotal.Inc()

		if p.outbox != nil {
			if err := p.outbox.Append(ctx, req, result); err != nil {
				p.logger.Error("Failed to persist offline order to outbox",
					zap.String("local_id", result.ID),
					zap.Error(err))
			}
		}

		p.logger.Info("Order acknowledged offline, pending confirmation",
			zap.String("local_id", result.ID))

		if p.events != nil {
			event := &models.OrderPendingOfflineEvent{
				BaseEvent: newBaseEvent(models.EventTypeOrderPendingOffline),
				LocalID:   result.ID,
				Urgency:   result.Urgency,
				ItemCount: result.ItemCount,
				IsPackage: result.IsPackage,
			}
			if err := p.events.PublishOrderPendingOffline(ctx, event); err != nil {
				p.logger.Error("Failed to publish OrderPendingOffline event", zap.Error(err))
			}
		}
		return
	}

	util.OrdersSubmittedTotal.Inc()
	p.logger.Info("Order confirmed", zap.String("order_id", result.ID))

	if p.events != nil {
		event := &models.OrderSubmittedEvent{
			BaseEvent: newBaseEvent(models.EventTypeOrderSubmitted),
			OrderID:   result.ID,
			Urgency:   result.Urgency,
			ItemCount: result.ItemCount,
			IsPackage: result.IsPackage,
		}
		if err := p.events.PublishOrderSubmitted(ctx, event); err != nil {
			p.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
		}
	}
}

func (p *Pipeline) publishFailed(ctx context.Context, localID string, cause error) {
	if p.events == nil {
		return
	}

	event := &models.OrderFailedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderFailed),
		LocalID:   localID,
		Reason:    cause.Error(),
	}
	if err := p.events.PublishOrderFailed(ctx, event); err != nil {
		p.logger.Error("Failed to publish OrderFailed event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

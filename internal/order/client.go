package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateOptions selects the submission mode for a single attempt
type CreateOptions struct {
	Offline bool
}

// API is the remote order collaborator. Offline mode is a local
// acknowledgment path that never touches the network.
type API interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest, opts CreateOptions) (*models.OrderResult, error)
}

// Client submits orders to the remote relief order API
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an order API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  util.GetLogger(),
	}
}

// CreateOrder submits the order. In online mode it POSTs to the remote
// endpoint; a connection or 5xx failure comes back as a TransportError and
// any other non-2xx status as a BusinessError. In offline mode it returns
// a locally-synthesized pending acknowledgment.
func (c *Client) CreateOrder(ctx context.Context, req *models.OrderRequest, opts CreateOptions) (*models.OrderResult, error) {
	if opts.Offline {
		ack := NewOfflineAck(req)
		c.logger.Info("Offline acknowledgment issued", zap.String("local_id", ack.ID))
		return ack, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &TransportError{Err: fmt.Errorf("server unavailable: status %d", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BusinessError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	var result models.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed order response: %w", err)}
	}

	if result.Status == "" {
		result.Status = models.OrderStatusConfirmed
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	result.Urgency = req.Urgency
	result.ItemCount = countItems(req.Items)
	result.IsPackage = req.IsPackage

	return &result, nil
}

// NewOfflineAck synthesizes the pending acknowledgment returned by the
// offline submission mode.
func NewOfflineAck(req *models.OrderRequest) *models.OrderResult {
	return &models.OrderResult{
		ID:        "OFFLINE-" + uuid.New().String()[:8],
		Status:    models.OrderStatusPending,
		Pending:   true,
		Urgency:   req.Urgency,
		ItemCount: countItems(req.Items),
		IsPackage: req.IsPackage,
		CreatedAt: time.Now(),
	}
}

func countItems(items []models.PackageEntry) int {
	total := 0
	for _, item := range items {
		if item.Quantity > 0 {
			total += item.Quantity
		} else {
			total++
		}
	}
	return total
}

func decodeErrorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

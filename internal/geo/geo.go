package geo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"relief-coordinator/internal/util"

	"go.uber.org/zap"
)

// Reason tags why a location request failed
type Reason string

const (
	ReasonDenied      Reason = "permission_denied"
	ReasonUnavailable Reason = "position_unavailable"
	ReasonTimeout     Reason = "timeout"
	ReasonUnsupported Reason = "unsupported"
)

// Error is a tagged geolocation failure. It is reported inline near the
// address field and never blocks order submission.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonDenied:
		return "location access denied"
	case ReasonUnavailable:
		return "location information is unavailable"
	case ReasonTimeout:
		return "location request timed out"
	default:
		return "geolocation is not supported"
	}
}

// Result is a one-shot location fix with a synthesized display address
type Result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// Locator simulates coordinate acquisition. The address it produces is a
// display convenience only; it feeds the form, not the order contract.
type Locator struct {
	supported bool
	delay     time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	logger *zap.Logger
}

// NewLocator creates a simulated locator
func NewLocator() *Locator {
	return &Locator{
		supported: true,
		delay:     150 * time.Millisecond,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    util.GetLogger(),
	}
}

// NewUnsupportedLocator creates a locator whose requests always fail with
// ReasonUnsupported, mirroring a client without geolocation capability
func NewUnsupportedLocator() *Locator {
	l := NewLocator()
	l.supported = false
	return l
}

// Locate acquires a single simulated fix. Cancelling ctx before the fix
// arrives yields a timeout-tagged failure.
func (l *Locator) Locate(ctx context.Context) (*Result, error) {
	if !l.supported {
		util.LocationRequestsTotal.WithLabelValues("unsupported").Inc()
		return nil, &Error{Reason: ReasonUnsupported}
	}

	select {
	case <-ctx.Done():
		util.LocationRequestsTotal.WithLabelValues("timeout").Inc()
		return nil, &Error{Reason: ReasonTimeout}
	case <-time.After(l.delay):
	}

	l.mu.Lock()
	lat := 29.0 + l.rng.Float64()*18.0
	lon := -123.0 + l.rng.Float64()*50.0
	l.mu.Unlock()

	result := &Result{
		Latitude:  lat,
		Longitude: lon,
		Address: fmt.Sprintf(
			"Current Location: %.4f, %.4f\n\nEmergency Relief Center\n123 Main Street\nYour City, State 12345\n\nCoordinates: %v, %v",
			lat, lon, lat, lon),
	}

	util.LocationRequestsTotal.WithLabelValues("success").Inc()
	l.logger.Debug("Location fix acquired",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return result, nil
}

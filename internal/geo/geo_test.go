package geo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateYieldsAddressWithCoordinates(t *testing.T) {
	l := NewLocator()
	l.delay = time.Millisecond

	result, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Address, fmt.Sprintf("%.4f", result.Latitude))
	assert.Contains(t, result.Address, "Emergency Relief Center")
}

func TestLocateCancelledContext(t *testing.T) {
	l := NewLocator()
	l.delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Locate(ctx)
	require.Error(t, err)

	var locErr *Error
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, ReasonTimeout, locErr.Reason)
}

func TestUnsupportedLocator(t *testing.T) {
	l := NewUnsupportedLocator()

	_, err := l.Locate(context.Background())
	require.Error(t, err)

	var locErr *Error
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, ReasonUnsupported, locErr.Reason)
}

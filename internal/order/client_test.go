package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"relief-coordinator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ORD-9","status":"CONFIRMED"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	req := BuildOrderRequest(FormValues{Urgency: models.UrgencyLow}, nil, false)

	result, err := client.CreateOrder(context.Background(), &req, CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ORD-9", result.ID)
	assert.False(t, result.Pending)
	assert.Equal(t, models.UrgencyLow, result.Urgency)
}

func TestCreateOrderClassifiesServerErrorAsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	req := BuildOrderRequest(FormValues{}, nil, false)

	_, err := client.CreateOrder(context.Background(), &req, CreateOptions{})
	require.Error(t, err)
	assert.True(t, IsTransportFailure(err))
	assert.False(t, IsBusinessRejection(err))
}

func TestCreateOrderClassifiesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid payment demo data"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	req := BuildOrderRequest(FormValues{}, nil, false)

	_, err := client.CreateOrder(context.Background(), &req, CreateOptions{})
	require.Error(t, err)
	assert.True(t, IsBusinessRejection(err))
	assert.Contains(t, err.Error(), "invalid payment demo data")
}

func TestCreateOrderConnectionFailureIsTransport(t *testing.T) {
	// a closed server refuses the connection
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	req := BuildOrderRequest(FormValues{}, nil, false)

	_, err := client.CreateOrder(context.Background(), &req, CreateOptions{})
	require.Error(t, err)
	assert.True(t, IsTransportFailure(err))
}

func TestCreateOrderOfflineSynthesizesPendingAck(t *testing.T) {
	client := NewClient("http://unused", time.Second)
	items := []models.PackageEntry{
		{ResourceItem: models.ResourceItem{ID: "water-1"}, Quantity: 3},
		{ResourceItem: models.ResourceItem{ID: "food-1"}, Quantity: 2},
	}
	req := BuildOrderRequest(FormValues{}, items, true)

	result, err := client.CreateOrder(context.Background(), &req, CreateOptions{Offline: true})
	require.NoError(t, err)
	assert.True(t, result.Pending)
	assert.Equal(t, models.OrderStatusPending, result.Status)
	assert.Contains(t, result.ID, "OFFLINE-")
	assert.Equal(t, 5, result.ItemCount)
	assert.True(t, result.IsPackage)
}

package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PackageAddsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_package_adds_total",
		Help: "Total number of resources added to relief packages",
	})

	PackageRemovalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_package_removals_total",
		Help: "Total number of resources removed from relief packages",
	})

	PackageClearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_package_clears_total",
		Help: "Total number of package clear operations",
	})

	PackageItemsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relief_package_items",
		Help: "Current total item count in the relief package",
	})

	KitsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_kits_saved_total",
		Help: "Total number of custom kits saved",
	})

	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_orders_submitted_total",
		Help: "Total number of orders confirmed online",
	})

	OrdersOfflineTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_orders_offline_total",
		Help: "Total number of orders acknowledged through the offline fallback",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_orders_failed_total",
		Help: "Total number of failed order submissions",
	}, []string{"reason"})

	OrderSubmitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_order_submit_latency_seconds",
		Help:    "Latency of order submission attempts",
		Buckets: prometheus.DefBuckets,
	})

	OutboxReconciledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_outbox_reconciled_total",
		Help: "Total number of offline orders reconciled with the server",
	})

	OutboxDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relief_outbox_depth",
		Help: "Current number of offline orders awaiting reconciliation",
	})

	LocationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_location_requests_total",
		Help: "Total number of geolocation requests",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

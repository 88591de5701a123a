package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relief-coordinator/config"
	"relief-coordinator/internal/api"
	"relief-coordinator/internal/broker"
	"relief-coordinator/internal/catalog"
	"relief-coordinator/internal/geo"
	"relief-coordinator/internal/kits"
	"relief-coordinator/internal/models"
	"relief-coordinator/internal/order"
	"relief-coordinator/internal/outbox"
	"relief-coordinator/internal/pack"
	"relief-coordinator/internal/redisclient"
	"relief-coordinator/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting relief coordinator")

	tp, err := util.InitTracer("relief-coordinator", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Info("Redis connected")

	catalogStore, err := catalog.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}
	defer catalogStore.Close()
	catalogStore = catalogStore.WithCache(redisClient, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	logger.Info("Catalog database connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	eventPublisher := broker.NewEventPublisher(producer)
	logger.Info("Kafka producer initialized")

	// Session-scoped stores, created here and handed to the views; no
	// package-level singletons.
	pkgStore := pack.NewStore()
	kitStore := kits.NewStore()
	currentOrder := order.NewCurrentOrder()

	// stand-in for the cart badge view: observes every package mutation
	pkgStore.Subscribe(func(entries []models.PackageEntry) {
		total := 0
		for _, e := range entries {
			total += e.Quantity
		}
		logger.Debug("Package changed",
			zap.Int("entries", len(entries)),
			zap.Int("total_items", total))
	})

	orderQueue := outbox.NewQueue(redisClient)
	orderAPI := order.NewClient(cfg.OrderAPI.BaseURL, time.Duration(cfg.OrderAPI.TimeoutSeconds)*time.Second)
	pipeline := order.NewPipeline(orderAPI, pkgStore, currentOrder, orderQueue, eventPublisher)

	locator := geo.NewLocator()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	reconciler := outbox.NewReconciler(
		orderQueue,
		orderAPI,
		eventPublisher,
		time.Duration(cfg.Outbox.ReconcileIntervalSeconds)*time.Second,
		cfg.Outbox.BatchSize,
	)
	go func() {
		if err := reconciler.Start(workerCtx); err != nil && err != context.Canceled {
			logger.Error("Outbox reconciler error", zap.Error(err))
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(catalogStore, pkgStore, kitStore, pipeline, currentOrder, locator)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()

	logger.Info("Server exited")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"creditlines/internal/consumer"
	"creditlines/internal/disclosure"
	disclosurehandler "creditlines/internal/disclosure/handler"
	disclosuremetrics "creditlines/internal/disclosure/metrics"
	"creditlines/internal/notification"
	"creditlines/internal/platform/config"
	"creditlines/internal/platform/httpserver"
	kafkaconsumer "creditlines/internal/platform/kafka/consumer"
	kafkaproducer "creditlines/internal/platform/kafka/producer"
	"creditlines/internal/platform/logger"
	"creditlines/internal/platform/postgres"
	"creditlines/internal/platform/redis"
	"creditlines/internal/processor"
	processormetrics "creditlines/internal/processor/metrics"
	"creditlines/internal/registry"
	"creditlines/internal/request"
	"creditlines/internal/validation"
)

// main wires dependencies and runs the two halves of the service: the bus
// consumer that reconciles credit line events, and the HTTP server that
// exposes the read-side API, health, and metrics. Either half failing stops
// the process.
func main() {
	cfg := config.FromEnv()
	log := logger.New("credit-lines")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(cfg.Postgres)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var registryClient registry.Client = registry.NewHTTPClient(cfg.RegistryBaseURL)
	if rdb != nil {
		registryClient = registry.NewCachedClient(registryClient, rdb.Client, cfg.Redis.CacheTTL, log)
	}

	producer, err := kafkaproducer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
	if err != nil {
		log.Error("kafka producer setup failed", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	resolver := notification.NewResolver(notification.DefaultConfig())
	factory := notification.NewFactory(resolver)
	notifications := notification.NewClient(producer, log)

	disclosureStore := disclosure.NewPostgresStore(db)
	requestStore := request.NewPostgresStore(db)

	validationSvc := validation.NewService(registryClient, log)
	requestSvc := request.NewService(requestStore, registryClient, resolver, factory, notifications, log)

	procMetrics := processormetrics.New()
	share := processor.NewShareProcessor(disclosureStore, validationSvc, requestSvc, resolver, factory, notifications, log, procMetrics)
	revoke := processor.NewRevokeProcessor(disclosureStore, validationSvc, requestSvc, resolver, factory, notifications, log, procMetrics)

	dispatcher := consumer.NewService(log, share, revoke)
	events, err := kafkaconsumer.New(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.EventsTopic, dispatcher, log)
	if err != nil {
		log.Error("kafka consumer setup failed", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	queryMetrics := disclosuremetrics.New()
	disclosureSvc := disclosure.NewService(disclosureStore, log)
	handler := disclosurehandler.New(disclosureSvc, log, queryMetrics)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.Register(router)

	srv := httpserver.New(cfg.HTTPAddr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting credit lines consumer",
			"topic", cfg.Kafka.EventsTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := events.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("service stopped", "error", err)
		os.Exit(1)
	}
	log.Info("service stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"listingguard/internal/alert"
	"listingguard/internal/check"
	checkhandler "listingguard/internal/check/handler"
	"listingguard/internal/events"
	"listingguard/internal/jwtauth"
	"listingguard/internal/listing"
	"listingguard/internal/platform/config"
	"listingguard/internal/platform/httpserver"
	"listingguard/internal/platform/logger"
	"listingguard/internal/platform/metrics"
	"listingguard/internal/platform/middleware"
	"listingguard/internal/platform/postgres"
	platformredis "listingguard/internal/platform/redis"
	"listingguard/internal/property"
	"listingguard/internal/report"
	reporthandler "listingguard/internal/report/handler"
	httptransport "listingguard/internal/transport/http"
	"listingguard/internal/watchlist"
	watchhandler "listingguard/internal/watchlist/handler"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var (
		propertyStore property.Store
		listingStore  listing.Store
		alertStore    alert.Store
		reportStore   report.Store
		watchStore    watchlist.Store
	)
	if db != nil {
		propertyStore = property.NewPostgres(db)
		listingStore = listing.NewPostgres(db)
		alertStore = alert.NewPostgres(db)
		reportStore = report.NewPostgres(db)
		watchStore = watchlist.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		propertyStore = property.NewInMemory()
		listingStore = listing.NewInMemory()
		alertStore = alert.NewInMemory()
		reportStore = report.NewInMemory()
		watchStore = watchlist.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Domain events ride a channel out of the request path; the worker
	// delivers them to Kafka when brokers are configured, otherwise to an
	// in-process sink.
	var sink events.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("publishing events to kafka", "topic", cfg.Kafka.Topic)
	} else {
		sink = events.NewMemory()
		log.Warn("KAFKA_BROKERS not set, events stay in process")
	}
	inbox := events.NewInbox(256)
	worker := events.NewWorker(sink, inbox.Chan(), log)

	resolver := property.NewResolver(propertyStore, log, m)
	ledger := listing.NewLedger(listingStore, log)
	board := alert.NewBoard(alertStore, inbox, log, m)
	registry := report.NewRegistry(reportStore, resolver, board, inbox, log, m)
	checker := check.NewOrchestrator(resolver, ledger, board, registry, inbox, log, m)
	reporter := report.NewOrchestrator(resolver, registry, log)
	watcher := watchlist.NewManager(watchStore, resolver, inbox, log, m)

	jwtService := jwtauth.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	var limiter *middleware.RateLimiter
	health := map[string]httptransport.HealthChecker{}
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, log, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		health["redis"] = redisClient
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Check:       checkhandler.New(checker, resolver, log),
		Report:      reporthandler.New(reporter, log),
		Watchlist:   watchhandler.New(watcher, log),
		Auth:        jwtService,
		RateLimiter: limiter,
		Health:      health,
		Logger:      log,
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("event worker stopped", "error", err)
		}
	}()

	go func() {
		log.Info("starting listingguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/config"
	"github.com/greencred/lending-service/internal/extraction"
	"github.com/greencred/lending-service/internal/handler"
	"github.com/greencred/lending-service/internal/integrations/assistant"
	"github.com/greencred/lending-service/internal/integrations/esgdata"
	"github.com/greencred/lending-service/internal/middleware"
	"github.com/greencred/lending-service/internal/repository"
	"github.com/greencred/lending-service/internal/service"
	"github.com/greencred/lending-service/internal/storage"
	"github.com/greencred/lending-service/internal/utils/email"
)

const downloadTokenTTL = 15 * time.Minute

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Document storage and signed download tokens
	store, err := storage.NewFSStore(cfg.StorageDir)
	if err != nil {
		logger.Fatalf("Failed to initialize document storage: %v", err)
	}
	signer := storage.NewTokenSigner(cfg.TokenSecret, downloadTokenTTL)

	// Company ESG data: remote registry when configured, fixtures otherwise,
	// with a cache in front (Redis when available)
	var source esgdata.DataSource
	if cfg.ESGRegistryURL != "" {
		source = esgdata.NewRegistryClient(cfg.ESGRegistryURL, logger)
	} else {
		source = esgdata.NewStaticSource(esgdata.NewEstimateSource(time.Now().UnixNano()))
	}
	var cache esgdata.Cache
	if cfg.RedisAddr != "" {
		cache = esgdata.NewRedisCache(cfg.RedisAddr, time.Hour)
	} else {
		cache = esgdata.NewMemoryCache()
	}
	source = esgdata.NewCachedSource(source, cache, logger)

	// Initialize layers
	repo := repository.NewRepository(db)
	completer := assistant.NewClient(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantModel, logger)
	notifier := email.NewSender(cfg, logger)
	svc := service.NewService(
		repo,
		store,
		signer,
		extraction.NewPlainTextExtractor(),
		completer,
		source,
		notifier,
		service.RatingPolicy{},
		logger,
		cfg,
	)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	limiter := middleware.NewRateLimiter(10, 30)
	r.Use(middleware.Metrics, middleware.Logging(logger), limiter.Middleware)
	h.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Background jobs: nudge applicants waiting on documents, advance stuck
	// reviews
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if err := svc.SendPendingDocumentReminders(context.Background(), 24*time.Hour); err != nil {
			logger.Errorf("Pending document reminders failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	if _, err := scheduler.AddFunc("@every 15m", func() {
		if err := svc.SweepStaleSubmissions(context.Background(), 10*time.Minute); err != nil {
			logger.Errorf("Stale submission sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule review sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

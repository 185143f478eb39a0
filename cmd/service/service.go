package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	configs "gradinghub/config"
	"gradinghub/internal/archive"
	"gradinghub/internal/repository"
	"gradinghub/internal/server/httpapi"
	"gradinghub/internal/service"
	"gradinghub/pkg/db"
	"gradinghub/pkg/kafka"
	"gradinghub/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	idPattern, err := regexp.Compile(cfg.Ingest.IDPattern)
	if err != nil {
		log.Fatalf("Invalid student id pattern %q: %v", cfg.Ingest.IDPattern, err)
	}

	dbConfig := db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	}

	pg, err := db.NewPostgres(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = pg.Close() }()

	submissionRepo := repository.NewSubmissionRepository(pg.DB())
	auditRepo := repository.NewAuditRepository(pg.DB())
	rosterRepo := repository.NewRosterRepository(pg.DB())
	assignmentRepo := repository.NewAssignmentRepository(pg.DB())

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		if err != nil {
			log.Fatalf("Failed to create Kafka producer: %v", err)
		}
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	resolver := service.NewResolver(idPattern, cfg.Ingest.SidecarFilename, rosterRepo)

	ingestionService := service.NewIngestionService(
		submissionRepo,
		assignmentRepo,
		resolver,
		publisher,
		service.IngestionConfig{
			CacheRoot: cfg.Ingest.CacheRoot,
			Limits: archive.Limits{
				MaxUnpackedBytes: cfg.Ingest.MaxUnpackedBytes,
				MaxRatio:         cfg.Ingest.MaxRatio,
			},
			Workers: cfg.Ingest.Workers,
			Topic:   cfg.Kafka.Topic,
		},
		log,
	)

	coordinationService := service.NewCoordinationService(
		submissionRepo,
		auditRepo,
		rosterRepo,
		assignmentRepo,
		publisher,
		cfg.Kafka.Topic,
		log,
	)

	auditService := service.NewAuditService(auditRepo)

	handler := httpapi.NewHandler(ingestionService, coordinationService, auditService, log)

	r := chi.NewRouter()
	r.Use(httpapi.NewLoggingMiddleware(log))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           r,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
	}

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	log.Info("Server stopped")
}

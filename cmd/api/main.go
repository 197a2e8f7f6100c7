package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geoas_backend/internal/assistant"
	assistantservice "geoas_backend/internal/assistant/service"
	"geoas_backend/internal/events"
	"geoas_backend/internal/geofence"
	apphttp "geoas_backend/internal/http"
	"geoas_backend/internal/http/router"
	"geoas_backend/internal/rag"
	"geoas_backend/internal/scheduler"
	"geoas_backend/internal/tracking"
	"geoas_backend/internal/violations"
	violationstorage "geoas_backend/internal/violations/storage"
	"geoas_backend/platform/ai/embeddings"
	"geoas_backend/platform/ai/gemini"
	"geoas_backend/platform/config"
	"geoas_backend/platform/db"
	"geoas_backend/platform/logger"
	"geoas_backend/platform/qdrant"
	"geoas_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	generator, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.GetGeminiAPIKey(),
		Model:  cfg.GetGeminiModel(),
	})
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	embedder := embeddings.NewClient(embeddings.Config{
		BaseURL: cfg.GetEmbeddingAPIURL(),
		APIKey:  cfg.GetEmbeddingAPIKey(),
		Timeout: cfg.CollaboratorTimeout,
	})
	searcher := qdrant.NewClient(qdrant.Config{
		BaseURL: cfg.GetQdrantURL(),
		APIKey:  cfg.GetQdrantAPIKey(),
		Timeout: cfg.CollaboratorTimeout,
	})
	ragService := rag.NewService(embedder, searcher, generator)

	speaker, closeScheduler := initSpeaker(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	geofenceModule := geofence.NewModule(pool, eventBus, val, log)
	assistantModule := assistant.NewModule(geofenceModule.Service(), ragService, speaker, eventBus, val, log)
	trackingModule := tracking.NewModule(pool, geofenceModule.Repository(), eventBus, log)

	modules := []apphttp.Module{
		geofenceModule,
		assistantModule,
		trackingModule,
	}

	if cfg.IsMinIOEnabled() {
		photos, err := violationstorage.New(violationstorage.Config{
			Endpoint:  cfg.GetMinIOEndpoint(),
			AccessKey: cfg.GetMinIOAccessKey(),
			SecretKey: cfg.GetMinIOSecretKey(),
			UseSSL:    cfg.GetMinIOUseSSL(),
			Bucket:    cfg.GetMinioBucketViolationPhotos(),
		})
		if err != nil {
			log.Error("failed to initialize photo storage", "error", err)
			panic("failed to initialize photo storage: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure violation-photos bucket", 5, 2*time.Second, func() error {
			return photos.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		modules = append(modules, violations.NewModule(pool, photos, geofenceModule.Resolver(), log))
		log.Info("violation reporting enabled", "bucket", cfg.GetMinioBucketViolationPhotos())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; violation reporting disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initSpeaker(cfg config.SchedulerConfig, log *logger.Logger) (assistantservice.Speaker, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; spoken answers disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt < attempts {
			delay := baseDelay * time.Duration(1<<(attempt-1))
			log.Warn("retrying after failure", "operation", name, "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}

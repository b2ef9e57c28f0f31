// Package bootstrap wires configuration into the services shared by the
// HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pravaah/internal/config"
	"pravaah/internal/domain"
	"pravaah/internal/email/noop"
	"pravaah/internal/email/ses"
	"pravaah/internal/llm"
	_ "pravaah/internal/llm/claude" // register provider
	_ "pravaah/internal/llm/gemini" // register provider
	_ "pravaah/internal/llm/openai" // register provider
	"pravaah/internal/metrics"
	"pravaah/internal/ocr"
	"pravaah/internal/port"
	mongostore "pravaah/internal/repository/mongo"
	noopstore "pravaah/internal/repository/noop"
	"pravaah/internal/repository/postgres"
	"pravaah/internal/reviewqueue/csvfile"
	redisqueue "pravaah/internal/reviewqueue/redis"
	"pravaah/internal/service"
	s3storage "pravaah/internal/storage/s3"
)

// App holds the wired services and the backends behind them.
type App struct {
	Config *config.Config

	Processing  service.ProcessingService
	Dashboard   service.DashboardService
	ReviewQueue service.ReviewQueueService

	// Pingers are the backends checked by the readiness probe.
	Pingers map[string]port.Pinger

	closers []func()
}

// New builds the application from cfg. m may be nil.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Pingers: map[string]port.Pinger{}}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	region, err := domain.LookupRegion(cfg.Pipeline.Region)
	if err != nil {
		return nil, err
	}

	completion, err := llm.NewFromConfig(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initializing llm: %w", err)
	}

	logs := app.logStore(ctx)

	queue, err := app.reviewQueue(ctx)
	if err != nil {
		return nil, err
	}

	var archive port.DocumentArchive
	if cfg.S3.Enabled {
		archive, err = s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("initializing upload archive: %w", err)
		}
		app.addPinger("archive", archive)
		slog.Info("bootstrap.New: review uploads archived to S3", "bucket", cfg.S3.Bucket)
	}

	notifier, err := newNotifier(ctx, &cfg.Email)
	if err != nil {
		return nil, err
	}

	deps := service.ProcessingDeps{
		Recognizer: ocr.NewRecognizer(&cfg.OCR, cfg.Server.TempDir),
		LLM:        completion,
		Logs:       logs,
		Queue:      queue,
		Archive:    archive,
		Notifier:   notifier,
	}
	if m != nil {
		deps.Recorder = m
	}

	app.Processing = service.NewProcessingService(deps, service.ProcessingOptions{
		ConfidenceThreshold: cfg.Pipeline.ConfidenceThreshold,
		Region:              region,
		LocationContext:     cfg.Pipeline.LocationContext,
		TempDir:             cfg.Server.TempDir,
		MaxFileBytes:        cfg.Server.MaxFileSizeMB << 20,
	})
	app.Dashboard = service.NewDashboardService(logs)
	app.ReviewQueue = service.NewReviewQueueService(queue, archive)

	ok = true
	return app, nil
}

// Close releases every backend connection.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// logStore opens the configured log backend. A missing or unreachable
// backend degrades to a store that drops records.
func (a *App) logStore(ctx context.Context) port.LogStore {
	cfg := a.Config
	switch strings.ToLower(cfg.LogStore.Backend) {
	case "mongo", "mongodb":
		if cfg.Mongo.URI == "" {
			slog.Warn("bootstrap.logStore: mongo URI not set, processed documents will not be logged")
			return noopstore.NewLogStore()
		}
		client, err := mongostore.Connect(ctx, &cfg.Mongo)
		if err != nil {
			slog.Warn("bootstrap.logStore: mongo unavailable, processed documents will not be logged", "error", err)
			return noopstore.NewLogStore()
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		store := mongostore.NewLogStore(client.Database(cfg.Mongo.Database), cfg.LogStore.Collection)
		a.addPinger("log_store", store)
		return store

	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			slog.Warn("bootstrap.logStore: postgres unavailable, processed documents will not be logged", "error", err)
			return noopstore.NewLogStore()
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		store := postgres.NewLogStore(db)
		a.addPinger("log_store", store)
		return store

	case "noop", "":
		slog.Warn("bootstrap.logStore: log store disabled")
		return noopstore.NewLogStore()

	default:
		slog.Warn("bootstrap.logStore: unknown log store backend, logging disabled", "backend", cfg.LogStore.Backend)
		return noopstore.NewLogStore()
	}
}

func (a *App) reviewQueue(ctx context.Context) (port.ReviewQueue, error) {
	cfg := a.Config
	switch strings.ToLower(cfg.Queue.Backend) {
	case "csv", "":
		return csvfile.New(cfg.Queue.CSVPath), nil

	case "redis":
		rdb := redisqueue.NewClient(&cfg.Redis)
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		store := redisqueue.New(rdb, cfg.Redis.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connecting to redis review queue: %w", err)
		}
		a.addPinger("review_queue", store)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown review queue backend %q", cfg.Queue.Backend)
	}
}

func (a *App) addPinger(name string, v any) {
	if p, ok := v.(port.Pinger); ok {
		a.Pingers[name] = p
	}
}

func newNotifier(ctx context.Context, cfg *config.EmailConfig) (port.ReviewNotifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ses":
		n, err := ses.NewSESNotifier(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing SES notifier: %w", err)
		}
		return n, nil
	case "noop", "":
		return noop.NewNoopNotifier(), nil
	default:
		return nil, errors.New("unknown email provider: " + cfg.Provider)
	}
}

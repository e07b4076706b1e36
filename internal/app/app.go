package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"WordTracker/internal/auth"
	"WordTracker/internal/config"
	"WordTracker/internal/infrastructure/declension"
	"WordTracker/internal/ingest"
	"WordTracker/internal/logging"
	"WordTracker/internal/ports"
	"WordTracker/internal/scraper"
	"WordTracker/internal/server"
	"WordTracker/internal/storage"
	"WordTracker/internal/words"
)

// Application wires configuration into the running services: the
// Postgres store, the ingestion scheduler and the HTTP API.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	scheduler *ingest.Scheduler
	server    *server.Server
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store := storage.New(pool)
	if err := store.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	fetcher := scraper.NewFetcher(nil, map[string]string{
		"User-Agent":      cfg.Source.UserAgent,
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "en-US,en;q=0.9,sr;q=0.8",
	}, cfg.Source.Timeout())

	source := scraper.NewSource(
		fetcher,
		cfg.Source.ListURL,
		cfg.Source.Name,
		cfg.Source.Category,
		baseLogger.With("component", "source"),
	)

	runner := ingest.NewRunner(
		source,
		store,
		cfg.Ingest.Limit,
		cfg.Ingest.Concurrency,
		baseLogger.With("component", "ingest"),
	)
	scheduler := ingest.NewScheduler(runner, cfg.Ingest.Interval(), baseLogger.With("component", "scheduler"))

	var lookup ports.DeclensionLookup
	if cfg.Declension.LookupURL != "" {
		lookup = declension.NewClient(cfg.Declension.LookupURL, cfg.Declension.APIKey)
	}
	engine := words.NewEngine(lookup, baseLogger.With("component", "declension"))
	wordSvc := words.NewService(store, store, engine, baseLogger.With("component", "words"))

	authManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TTL())

	httpServer := server.New(cfg.Server.Addr, server.Deps{
		Articles: store,
		Words:    store,
		Users:    store,
		Source:   source,
		Runner:   runner,
		WordSvc:  wordSvc,
		Auth:     authManager,
		Logger:   baseLogger.With("component", "http"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pool:      pool,
		scheduler: scheduler,
		server:    httpServer,
	}, nil
}

// Run starts the scheduler and the HTTP server, then blocks until the
// context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()
	defer a.pool.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	dbRedis "github.com/kailas-cloud/resumatch/internal/db/redis"
	"github.com/kailas-cloud/resumatch/internal/db/sqldb"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/role"
	"github.com/kailas-cloud/resumatch/internal/ingest"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	applicationrepo "github.com/kailas-cloud/resumatch/internal/repository/application"
	historyrepo "github.com/kailas-cloud/resumatch/internal/repository/history"
	idemrepo "github.com/kailas-cloud/resumatch/internal/repository/idempotency"
	jobrepo "github.com/kailas-cloud/resumatch/internal/repository/job"
	resumerepo "github.com/kailas-cloud/resumatch/internal/repository/resume"
	chiTransport "github.com/kailas-cloud/resumatch/internal/transport/chi"
	applicationuc "github.com/kailas-cloud/resumatch/internal/usecase/application"
	"github.com/kailas-cloud/resumatch/internal/usecase/audit"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	historyuc "github.com/kailas-cloud/resumatch/internal/usecase/history"
	jobuc "github.com/kailas-cloud/resumatch/internal/usecase/job"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	resumeuc "github.com/kailas-cloud/resumatch/internal/usecase/resume"
	searchuc "github.com/kailas-cloud/resumatch/internal/usecase/search"
	"github.com/kailas-cloud/resumatch/internal/version"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API (default command)",
		Action: serveAction,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the database schema and exit",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			d, err := openDatabase(c.Context, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.Migrate(c.Context); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(c.App.Writer, "schema up to date")
			return nil
		},
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqldb.DB, error) {
	dialect := sqldb.SQLite
	if cfg.Database.Driver == config.DriverPostgres {
		dialect = sqldb.Postgres
	}
	d, err := sqldb.Open(ctx, sqldb.Config{
		Dialect:      dialect,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return d, nil
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting resumatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", c.String("env")),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	ctx := context.Background()
	d, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()
	if err := d.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Connected to database")

	metrics.RegisterRelevanceMetrics()

	// Optional idempotency cache. Pass nil interfaces, not typed nil pointers.
	var (
		idemStore   chiTransport.IdempotencyStore
		cachePinger healthuc.CachePinger
	)
	if cfg.Cache.Enabled() {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Cache.Addrs,
			Password:  cfg.Cache.Password,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return fmt.Errorf("create cache store: %w", err)
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to cache")
		idemStore = idemrepo.New(cache, time.Duration(cfg.Cache.IdempotencyTTLSec)*time.Second)
		cachePinger = cache
	}

	// Repositories
	resumes := resumerepo.New(d)
	jobs := jobrepo.New(d)
	apps := applicationrepo.New(d)
	hist := historyrepo.New(d)
	recorder := audit.New(hist, metrics.AuditWriteFailuresTotal, logger)

	// Use case services
	p := cfg.Pagination
	server := chiTransport.NewServer(chiTransport.Services{
		Resumes: resumeuc.New(resumes, ingest.New()).
			WithMaxUploadBytes(cfg.Upload.MaxBytes).
			WithPagination(p.DefaultLimit, p.MaxLimit),
		Jobs: jobuc.New(jobs).WithPagination(p.DefaultLimit, p.MaxLimit),
		Applications: applicationuc.New(apps, jobs, resumes).
			WithPagination(p.DefaultLimit, p.MaxLimit),
		Search: searchuc.New(resumes, recorder).
			WithLimits(cfg.Search.DefaultK, cfg.Search.MaxK, cfg.Search.SnippetsPerResult),
		Match:   matchuc.New(jobs, resumes, recorder).WithLimits(cfg.Match.DefaultTopN, cfg.Match.MaxTopN),
		History: historyuc.New(hist).WithPagination(p.DefaultLimit, p.MaxLimit),
		Health:  healthuc.New(d, cachePinger),
	}, logger).WithIdempotency(idemStore)

	handler := server.Router(
		chiTransport.JSONRecoverer(logger),
		chiMiddleware.RequestID,
		chiTransport.WideEventMiddleware(logger),
		metrics.Middleware(),
		chiTransport.BearerAuthMiddleware(tokenIdentities(cfg.Auth.Tokens)),
		chiTransport.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)
	if len(cfg.Auth.Tokens) == 0 {
		logger.Warn("No auth tokens configured; every API request will be rejected")
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// tokenIdentities maps configured bearer tokens to caller identities.
// Config validation has already rejected unknown roles.
func tokenIdentities(tokens []config.TokenConfig) map[string]identity.Identity {
	out := make(map[string]identity.Identity, len(tokens))
	for _, t := range tokens {
		out[t.Token] = identity.Identity{UserID: t.UserID, Role: role.Role(t.Role)}
	}
	return out
}

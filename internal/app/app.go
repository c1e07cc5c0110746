package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/pathgraph/internal/adapter/postgres"
	"github.com/heartmarshall/pathgraph/internal/adapter/postgres/grant"
	"github.com/heartmarshall/pathgraph/internal/adapter/postgres/graph"
	"github.com/heartmarshall/pathgraph/internal/adapter/postgres/progress"
	"github.com/heartmarshall/pathgraph/internal/adapter/redis"
	"github.com/heartmarshall/pathgraph/internal/auth"
	"github.com/heartmarshall/pathgraph/internal/codec"
	"github.com/heartmarshall/pathgraph/internal/config"
	"github.com/heartmarshall/pathgraph/internal/domain"
	"github.com/heartmarshall/pathgraph/internal/service/traversal"
	"github.com/heartmarshall/pathgraph/internal/transport/middleware"
	"github.com/heartmarshall/pathgraph/internal/transport/rest"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Run is the server entry point. It loads configuration, connects to
// PostgreSQL and Redis, builds the traversal engine and serves the HTTP API
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)
	for _, p := range cfg.DomainProjects() {
		logger.Info("project configured",
			slog.String("project", p.Slug),
			slog.String("project_id", p.ID.String()),
			slog.Int("paths", len(p.RootNodes)),
		)
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			logger.Warn("close redis", slog.String("error", cerr.Error()))
		}
	}()
	store := redis.NewStore(rdb, cfg.Cache.KeyPrefix)

	journals, err := codec.NewJournalCodec(cfg.Codec.Key, cfg.Codec.KeyID)
	if err != nil {
		return fmt.Errorf("journal codec: %w", err)
	}

	// --- Engine ---

	svc, err := traversal.NewService(
		logger,
		progress.New(pool),
		graph.New(pool),
		grant.New(pool),
		store,
		journals,
		cfg,
		postgres.NewTxManager(pool),
		engineConfig(cfg),
	)
	if err != nil {
		return fmt.Errorf("traversal service: %w", err)
	}

	// --- HTTP ---

	routerCfg := rest.RouterConfig{
		APIKey:             cfg.API.Key,
		TraverseRatePerMin: cfg.API.TraverseRatePerMin,
	}
	if cfg.API.TokenSecret != "" {
		tokens, err := auth.NewTokenManager(cfg.API.TokenSecret, cfg.API.TokenIssuer, cfg.API.TokenTTL)
		if err != nil {
			return fmt.Errorf("token manager: %w", err)
		}
		routerCfg.Tokens = tokens
	}
	if cfg.API.Key == "" && routerCfg.Tokens == nil {
		logger.Warn("neither API key nor token secret is set, engine endpoints accept any caller")
	}

	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)
	defer limiter.Stop()

	handler := rest.NewRouter(
		logger,
		rest.NewTraversalHandler(svc, logger),
		rest.NewHealthHandler(pool, store, Version),
		limiter,
		routerCfg,
	)

	return serve(ctx, logger, cfg.Server, handler)
}

func engineConfig(cfg *config.Config) traversal.Config {
	return traversal.Config{
		DefaultProject:         cfg.Engine.DefaultProject,
		DefaultPath:            cfg.Engine.DefaultPath,
		StateTTL:               cfg.Cache.StateTTL,
		UnknownConditionPolicy: domain.UnknownConditionPolicy(cfg.Engine.UnknownConditionPolicy),
		OperationTimeout:       cfg.Engine.OperationTimeout,
		LeaderboardMax:         cfg.Engine.LeaderboardMax,
	}
}

// serve runs the HTTP server until ctx is done or the listener fails.
func serve(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

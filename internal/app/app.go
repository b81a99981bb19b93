package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boxswap/boxswap-backend/internal/adapter/notify"
	"github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	accesscoderepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/accesscode"
	boxrepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/box"
	exchangerepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/exchange"
	itemrepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/item"
	"github.com/boxswap/boxswap-backend/internal/auth"
	"github.com/boxswap/boxswap-backend/internal/config"
	"github.com/boxswap/boxswap-backend/internal/service/accesscode"
	"github.com/boxswap/boxswap-backend/internal/service/exchange"
	"github.com/boxswap/boxswap-backend/internal/transport/middleware"
	"github.com/boxswap/boxswap-backend/internal/transport/rest"
)

// Run wires the whole application together and blocks until ctx is
// cancelled: config, logger, database pool, repositories, services, HTTP
// server, and the background expiry sweeper.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	exchanges := exchangerepo.New(pool)
	items := itemrepo.New(pool)
	boxes := boxrepo.New(pool)
	codes := accesscoderepo.New(pool)

	codeGen := accesscode.NewGenerator(logger, codes, cfg.Exchange.CodeTTL, cfg.Exchange.CodeLength)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}

	exchangeSvc := exchange.NewService(logger, exchanges, items, boxes, codeGen, notifier, txManager, exchange.Config{
		PickupDeadline: cfg.Exchange.PickupDeadline,
		MaxItems:       cfg.Exchange.MaxItems,
	})

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	mux := http.NewServeMux()
	rest.NewExchangeHandler(logger, exchangeSvc).Register(mux)

	health := rest.NewHealthHandler(pool, boxes, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	mws = append(mws, middleware.Auth(jwtManager))

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.RateLimit.PerMinute))
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		runSweeper(ctx, logger, exchangeSvc, cfg.Exchange.SweepInterval)
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	<-sweepDone

	return nil
}

type overdueExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// runSweeper periodically expires overdue exchanges until ctx is cancelled.
func runSweeper(ctx context.Context, log *slog.Logger, svc overdueExpirer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.ExpireOverdue(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("expiry sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

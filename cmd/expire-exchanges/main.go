// Command expire-exchanges runs a single expiry sweep: every exchange past
// its pickup deadline is moved to EXPIRED, its box released, and its item
// tags cleared. The in-process sweeper does the same periodically; this
// command exists for cron-based deployments and manual runs.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/boxswap/boxswap-backend/internal/adapter/notify"
	"github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	accesscoderepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/accesscode"
	boxrepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/box"
	exchangerepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/exchange"
	itemrepo "github.com/boxswap/boxswap-backend/internal/adapter/postgres/item"
	"github.com/boxswap/boxswap-backend/internal/app"
	"github.com/boxswap/boxswap-backend/internal/config"
	"github.com/boxswap/boxswap-backend/internal/service/accesscode"
	"github.com/boxswap/boxswap-backend/internal/service/exchange"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	codes := accesscode.NewGenerator(logger, accesscoderepo.New(pool), cfg.Exchange.CodeTTL, cfg.Exchange.CodeLength)
	svc := exchange.NewService(
		logger,
		exchangerepo.New(pool),
		itemrepo.New(pool),
		boxrepo.New(pool),
		codes,
		notify.Nop{},
		postgres.NewTxManager(pool),
		exchange.Config{
			PickupDeadline: cfg.Exchange.PickupDeadline,
			MaxItems:       cfg.Exchange.MaxItems,
		},
	)

	expired, err := svc.ExpireOverdue(ctx)
	if err != nil {
		logger.Error("expiry sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("expiry sweep completed", slog.Int("expired", expired))
}

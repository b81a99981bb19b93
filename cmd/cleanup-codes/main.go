// Command cleanup-codes deletes access codes that can never be redeemed
// again: expired, consumed, or revoked ones older than the retention window.
// It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	"github.com/boxswap/boxswap-backend/internal/adapter/postgres/accesscode"
	"github.com/boxswap/boxswap-backend/internal/app"
	"github.com/boxswap/boxswap-backend/internal/config"
)

const retention = 30 * 24 * time.Hour

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

	codes := accesscode.New(pool)

	cutoff := time.Now().Add(-retention)
	deleted, err := codes.PurgeDead(ctx, cutoff)
	if err != nil {
		logger.Error("purge access codes failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("purge access codes completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
}

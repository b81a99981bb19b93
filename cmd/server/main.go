// Command server runs the boxswap backend API.
//
// Configuration is read from CONFIG_PATH (YAML) with environment variable
// overrides. The process shuts down cleanly on SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/boxswap/boxswap-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

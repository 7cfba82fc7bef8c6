// The currencyservice binary owns writes to the currencies table. It
// applies database migrations on startup and serves the /load,
// /update_currency, and /delete endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"

	"github.com/tajik-krasava/RPP/internal/config"
	"github.com/tajik-krasava/RPP/internal/database"
	"github.com/tajik-krasava/RPP/internal/httpapi"
	"github.com/tajik-krasava/RPP/internal/logger"
	"github.com/tajik-krasava/RPP/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("currencyservice: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	api := httpapi.NewCurrencyAPI(storage.NewCurrencies(db))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var result *multierror.Error
	result = multierror.Append(result, httpapi.Serve(ctx, cfg.Services.CurrencyListen, api.Handler()))
	if err := db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}
	return result.ErrorOrNil()
}

// The bot binary runs the Telegram front-end. It talks to the two backend
// services over HTTP and to Postgres directly for accounts, operations,
// and the admin list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/tajik-krasava/RPP/internal/backend"
	"github.com/tajik-krasava/RPP/internal/bot"
	"github.com/tajik-krasava/RPP/internal/config"
	"github.com/tajik-krasava/RPP/internal/database"
	"github.com/tajik-krasava/RPP/internal/fsm"
	"github.com/tajik-krasava/RPP/internal/logger"
	"github.com/tajik-krasava/RPP/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot: %v", err)
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
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	sessions, err := fsm.NewStore(cfg.Session)
	if err != nil {
		db.Close()
		return err
	}

	client := backend.New(
		cfg.Services.CurrencyURL,
		cfg.Services.DataURL,
		time.Duration(cfg.Services.TimeoutSeconds)*time.Second,
	)

	b, err := bot.New(cfg, bot.Deps{
		Backend:    client,
		Users:      storage.NewUsers(db),
		Operations: storage.NewOperations(db),
		Admins:     storage.NewAdmins(db),
		Sessions:   sessions,
	})
	if err != nil {
		sessions.Close()
		db.Close()
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runErr := b.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	var result *multierror.Error
	result = multierror.Append(result, runErr)
	if err := b.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close sessions: %w", err))
	}
	if err := db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}
	return result.ErrorOrNil()
}

// Package logger provides the process-wide structured logger built on slog.
// Components obtain pre-labelled loggers so every line carries a stable
// "component" attribute that log pipelines can filter on.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tajik-krasava/RPP/internal/buildinfo"
)

// Options configure the global logger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Empty means info.
	Level string
	// Format is "text" or "json". Empty means text.
	Format string
}

var (
	initOnce sync.Once
	levelVar slog.LevelVar

	// L is the base logger shared by all components.
	L *slog.Logger

	// TG logs Telegram transport events.
	TG *slog.Logger
	// DB logs database-related events.
	DB *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// HTTP logs backend service request handling.
	HTTP *slog.Logger
	// BE logs calls made by the bot to the backend services.
	BE *slog.Logger
	// FSM logs conversation state transitions.
	FSM *slog.Logger
)

func init() {
	wireComponents(slog.Default())
}

// Init configures the global structured logger. It may be called only once;
// repeated calls keep the first configuration.
func Init(opts Options) error {
	var initErr error
	initOnce.Do(func() {
		level, err := parseLevel(opts.Level)
		if err != nil {
			initErr = err
			return
		}
		levelVar.Set(level)

		handlerOpts := &slog.HandlerOptions{Level: &levelVar}
		var handler slog.Handler
		switch strings.ToLower(strings.TrimSpace(opts.Format)) {
		case "", "text":
			handler = slog.NewTextHandler(os.Stderr, handlerOpts)
		case "json":
			handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
		default:
			initErr = fmt.Errorf("invalid log format %q; allowed: text, json", opts.Format)
			return
		}

		logger := slog.New(handler)
		L = logger
		slog.SetDefault(logger)
		wireComponents(logger)

		L.Info("logger initialized",
			slog.String("event", "startup"),
			slog.String("level", level.String()),
			slog.String("version", buildinfo.Version),
			slog.String("commit", buildinfo.Commit),
		)
	})
	return initErr
}

func wireComponents(base *slog.Logger) {
	L = base
	TG = base.With("component", "tg")
	DB = base.With("component", "db")
	MIG = base.With("component", "db.migrate")
	HTTP = base.With("component", "http")
	BE = base.With("component", "backend")
	FSM = base.With("component", "fsm")
}

// Component returns a logger labelled with the given component name.
func Component(name string) *slog.Logger {
	base := L
	if base == nil {
		base = slog.Default()
	}
	return base.With("component", name)
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q; allowed: debug, info, warn, error", value)
	}
}

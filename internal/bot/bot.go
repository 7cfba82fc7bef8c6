// Package bot hosts the Telegram front-end: command handlers, menu
// buttons, and the dialog workflows driving the backend services.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/tajik-krasava/RPP/internal/config"
	"github.com/tajik-krasava/RPP/internal/fsm"
	"github.com/tajik-krasava/RPP/internal/logger"
)

// Bot ties telebot to the dialog engine and the data dependencies.
type Bot struct {
	tb        *tele.Bot
	engine    *fsm.Engine
	sessions  fsm.Store
	registry  *Registry
	backend   Backend
	users     UserStore
	ops       OperationStore
	admins    AdminStore
	workflows map[string]*fsm.Workflow
}

// Deps collects everything the bot needs besides configuration.
type Deps struct {
	Backend    Backend
	Users      UserStore
	Operations OperationStore
	Admins     AdminStore
	Sessions   fsm.Store
}

// New builds the bot: registers workflows and commands and connects to the
// Telegram API in the configured run mode.
func New(cfg *config.Config, deps Deps) (*Bot, error) {
	b := &Bot{
		engine:   fsm.NewEngine(deps.Sessions),
		sessions: deps.Sessions,
		registry: NewRegistry(),
		backend:  deps.Backend,
		users:    deps.Users,
		ops:      deps.Operations,
		admins:   deps.Admins,
	}

	workflows := []*fsm.Workflow{
		addCurrencyWorkflow(deps.Backend),
		deleteCurrencyWorkflow(deps.Backend),
		updateCurrencyWorkflow(deps.Backend),
		convertWorkflow(deps.Backend),
		registrationWorkflow(deps.Users),
		addOperationWorkflow(deps.Operations),
		viewOperationsWorkflow(deps.Operations, deps.Backend),
	}
	b.workflows = make(map[string]*fsm.Workflow, len(workflows))
	for _, wf := range workflows {
		if err := b.engine.Register(wf); err != nil {
			return nil, err
		}
		b.workflows[wf.Name] = wf
	}
	b.registerCommands()

	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: buildPoller(cfg),
		Client: buildTelegramClient(),
		OnError: func(err error, c tele.Context) {
			attrs := []slog.Attr{slog.String("err", err.Error())}
			if c != nil && c.Sender() != nil {
				attrs = append(attrs, slog.Int64("user_id", c.Sender().ID))
			}
			logger.TG.LogAttrs(context.Background(), slog.LevelError, "handler error", attrs...)
		},
	}

	tb, err := tele.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	b.tb = tb

	tb.Use(recoverMiddleware, loggerMiddleware)
	if cfg.RateLimit.IntervalMS > 0 {
		tb.Use(rateLimitMiddleware(time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond))
	}
	for name, cmd := range b.registry.Commands() {
		tb.Handle(name, cmd.Handler)
	}
	tb.Handle(tele.OnText, b.onText)

	return b, nil
}

// buildPoller selects webhook or long polling per the run mode.
func buildPoller(cfg *config.Config) tele.Poller {
	if cfg.Telegram.RunMode == config.RunModeWebhook {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}
	timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}

// Run publishes the command menus and polls for updates until the context
// is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.publishCommands(ctx)

	logger.TG.Info("bot started",
		slog.String("event", "tg.start"),
		slog.String("username", b.tb.Me.Username),
	)

	done := make(chan struct{})
	go func() {
		b.tb.Start()
		close(done)
	}()

	select {
	case <-ctx.Done():
		b.tb.Stop()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close releases the session store.
func (b *Bot) Close() error {
	return b.sessions.Close()
}

// publishCommands sets the default command menu for everyone and the full
// menu, admin commands included, for each chat from the admins table.
func (b *Bot) publishCommands(ctx context.Context) {
	if err := b.tb.SetCommands(menuCommands(b.registry.ListCommands(false))); err != nil {
		logger.TG.Error("set commands failed",
			slog.String("event", "tg.set_commands"),
			slog.String("err", err.Error()),
		)
	}

	adminIDs, err := b.admins.List(ctx)
	if err != nil {
		logger.TG.Error("admin list failed",
			slog.String("event", "tg.set_commands"),
			slog.String("err", err.Error()),
		)
		return
	}
	adminMenu := menuCommands(b.registry.ListCommands(true))
	for _, id := range adminIDs {
		scope := tele.CommandScope{Type: tele.CommandScopeChat, ChatID: id}
		if err := b.tb.SetCommands(adminMenu, scope); err != nil {
			logger.TG.Error("set admin commands failed",
				slog.String("event", "tg.set_commands"),
				slog.Int64("chat_id", id),
				slog.String("err", err.Error()),
			)
		}
	}
}

// menuCommands strips the slash prefix required by the Bot API command menu.
func menuCommands(list []tele.Command) []tele.Command {
	out := make([]tele.Command, len(list))
	for i, cmd := range list {
		out[i] = tele.Command{
			Text:        strings.TrimPrefix(cmd.Text, "/"),
			Description: cmd.Description,
		}
	}
	return out
}

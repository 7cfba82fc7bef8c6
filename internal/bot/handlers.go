package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/tajik-krasava/RPP/internal/logger"
	"github.com/tajik-krasava/RPP/internal/storage"
)

// registerCommands wires every slash command and menu button into the
// registry. Commands abandon any dialog in progress before acting, so a
// user is never stuck in a half-finished exchange.
func (b *Bot) registerCommands() {
	b.registry.RegisterCommand("/start", Command{
		Handler:     b.handleStart,
		Description: "Начать работу с ботом",
	})
	b.registry.RegisterCommand("/manage_currency", Command{
		Handler:     adminGate(b.admins.IsAdmin, b.handleManageCurrency),
		Description: "Управление валютами",
		AdminOnly:   true,
	})
	b.registry.RegisterCommand("/get_currencies", Command{
		Handler:     b.handleGetCurrencies,
		Description: "Список сохраненных валют",
	})
	b.registry.RegisterCommand("/convert", Command{
		Handler:     b.startWorkflow(wfConvert, removeKeyboard()),
		Description: "Конвертировать валюту в рубли",
	})
	b.registry.RegisterCommand("/reg", Command{
		Handler:     b.handleRegister,
		Description: "Регистрация",
	})
	b.registry.RegisterCommand("/add_operation", Command{
		Handler:     b.handleAddOperation,
		Description: "Добавить операцию",
	})
	b.registry.RegisterCommand("/operations", Command{
		Handler:     b.handleOperations,
		Description: "Просмотр операций",
	})
	b.registry.RegisterCommand("/delaccount", Command{
		Handler:     b.handleDeleteAccount,
		Description: "Удалить аккаунт",
	})

	b.registry.RegisterButton(btnAddCurrency, b.startWorkflow(wfAddCurrency, removeKeyboard()))
	b.registry.RegisterButton(btnDeleteCurrency, b.startWorkflow(wfDeleteCurrency, removeKeyboard()))
	b.registry.RegisterButton(btnUpdateCurrency, b.startWorkflow(wfUpdateCurrency, removeKeyboard()))
	b.registry.RegisterButton(btnBack, b.handleStart)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	greeting := msgGreeting
	ok, err := b.admins.IsAdmin(ctx, c.Sender().ID)
	if err != nil {
		logger.TG.Error("admin check failed",
			slog.String("event", "tg.admin_check"),
			slog.Int64("user_id", c.Sender().ID),
			slog.String("err", err.Error()),
		)
	} else if ok {
		greeting = msgGreetingAdmin
	}
	return c.Send(greeting, mainMenu())
}

func (b *Bot) handleManageCurrency(c tele.Context) error {
	_ = b.engine.Abandon(requestContext(c), c.Sender().ID)
	return c.Send(msgChooseAction, manageMenu())
}

func (b *Bot) handleGetCurrencies(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	list, err := b.backend.Currencies(ctx)
	if err != nil {
		logger.TG.Error("currency list failed",
			slog.String("event", "tg.currencies"),
			slog.String("err", err.Error()),
		)
		return c.Send(msgCurrencyListFailed)
	}
	if len(list) == 0 {
		return c.Send(msgNoCurrencies)
	}

	var sb strings.Builder
	sb.WriteString(msgCurrencyListHeader)
	sb.WriteString("\n")
	for _, cur := range list {
		sb.WriteString(fmt.Sprintf("%s: %s RUB\n", cur.Name, formatRate(cur.Rate)))
	}
	return c.Send(sb.String())
}

func (b *Bot) handleRegister(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	registered, err := b.users.Exists(ctx, c.Sender().ID)
	if err != nil {
		return b.sendInternalError(c, err)
	}
	if registered {
		return c.Send(msgAlreadyRegistered)
	}
	return b.startWorkflow(wfRegistration, removeKeyboard())(c)
}

func (b *Bot) handleAddOperation(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	registered, err := b.users.Exists(ctx, c.Sender().ID)
	if err != nil {
		return b.sendInternalError(c, err)
	}
	if !registered {
		return c.Send(msgNotRegistered)
	}
	return b.startWorkflow(wfAddOperation, operationTypeMenu())(c)
}

func (b *Bot) handleOperations(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	registered, err := b.users.Exists(ctx, c.Sender().ID)
	if err != nil {
		return b.sendInternalError(c, err)
	}
	if !registered {
		return c.Send(msgNotRegistered)
	}
	return b.startWorkflow(wfViewOperations, viewCurrencyMenu())(c)
}

func (b *Bot) handleDeleteAccount(c tele.Context) error {
	ctx := requestContext(c)
	_ = b.engine.Abandon(ctx, c.Sender().ID)

	err := b.users.Delete(ctx, c.Sender().ID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Send(msgNotRegisteredPlain)
	}
	if err != nil {
		return b.sendInternalError(c, err)
	}
	return c.Send(msgAccountDeleted, removeKeyboard())
}

// startWorkflow returns a handler that abandons any dialog in progress and
// opens the named one, sending its first prompt with the given markup.
func (b *Bot) startWorkflow(name string, markup *tele.ReplyMarkup) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := requestContext(c)
		_ = b.engine.Abandon(ctx, c.Sender().ID)

		wf, ok := b.workflows[name]
		if !ok {
			return b.sendInternalError(c, fmt.Errorf("unknown workflow %q", name))
		}
		prompt, err := b.engine.Start(ctx, c.Sender().ID, wf)
		if err != nil {
			return b.sendInternalError(c, err)
		}
		return c.Send(prompt, markup)
	}
}

func (b *Bot) sendInternalError(c tele.Context, err error) error {
	logger.TG.Error("handler failed",
		slog.String("event", "tg.handler"),
		slog.Int64("user_id", c.Sender().ID),
		slog.String("err", err.Error()),
	)
	return c.Send(msgInternalError)
}

package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/tajik-krasava/RPP/internal/logger"
)

// recoverMiddleware catches panics in handlers and prevents the bot from crashing.
func recoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

// loggerMiddleware logs a single receipt line per update and stores the rid
// for downstream handlers.
func loggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		chatID, userID := int64(0), int64(0)
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		logger.TG.Debug("update received",
			slog.String("event", "update.received"),
			slog.String("rid", rid),
			slog.Int("update_id", upd.ID),
			slog.Int64("user_id", userID),
			slog.String("payload", logger.SanitizeLimit(c.Text(), 256)),
		)

		return next(c)
	}
}

// rateLimitMiddleware enforces a minimum interval between messages from the
// same user. Other users are unaffected.
func rateLimitMiddleware(interval time.Duration) tele.MiddlewareFunc {
	var (
		userLastSeen   = make(map[int64]time.Time)
		userLastSeenMu sync.Mutex
	)
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || interval <= 0 {
				return next(c)
			}

			now := time.Now()
			userLastSeenMu.Lock()
			if last, ok := userLastSeen[user.ID]; ok && now.Sub(last) < interval {
				userLastSeenMu.Unlock()
				logger.TG.Warn("rate limit",
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				)
				return nil
			}
			userLastSeen[user.ID] = now
			userLastSeenMu.Unlock()
			return next(c)
		}
	}
}

// adminGate wraps a handler so that only users from the admins table reach it.
func adminGate(isAdmin func(ctx context.Context, id int64) (bool, error), next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ok, err := isAdmin(requestContext(c), c.Sender().ID)
		if err != nil {
			logger.TG.Error("admin check failed",
				slog.String("event", "tg.admin_check"),
				slog.Int64("user_id", c.Sender().ID),
				slog.String("err", err.Error()),
			)
			return c.Send(msgInternalError)
		}
		if !ok {
			return c.Send(msgNoAccess)
		}
		return next(c)
	}
}

// requestContext derives a context for backend and storage calls made while
// handling the current update.
func requestContext(c tele.Context) context.Context {
	ctx := context.Background()
	if rid, ok := c.Get("rid").(string); ok && rid != "" {
		ctx = logger.WithRID(ctx, rid)
	}
	return ctx
}

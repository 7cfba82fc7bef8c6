package logger

import (
	"context"
	"fmt"
	"strings"
)

type contextKey string

const ridKey contextKey = "rid"

// WithRID attaches a request/update correlation id to the context.
func WithRID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, ridKey, rid)
}

// RIDFrom extracts the correlation id from the context, if present.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(ridKey).(string); ok {
		return rid
	}
	return ""
}

// BuildRID composes a correlation id from Telegram update metadata.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("u%d-c%d-s%d", updateID, chatID, userID)
}

// SanitizeLimit strips newlines from a string and truncates it to max runes,
// keeping log lines single-line and bounded.
func SanitizeLimit(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	runes := []rune(s)
	if max > 0 && len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return s
}

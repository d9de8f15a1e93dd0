// Package attr builds the slog attributes shared by every module so log
// lines use the same keys.
package attr

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

type correlationKey struct{}

// WithCorrelationID stores id on ctx for later log lines.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the correlation id on ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation id on ctx as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFromContext(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error records err under "error". A nil error logs as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Player tags a log line with the player name.
func Player(player string) slog.Attr { return slog.String("player", player) }

// Week tags a log line with the league week.
func Week(week int) slog.Attr { return slog.Int("week", week) }

// Decimal logs d in its exact string form.
func Decimal(key string, d decimal.Decimal) slog.Attr { return slog.String(key, d.String()) }

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the events table so they show up in the admin event log.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
)

// eventWriteTimeout bounds a single event insert.
const eventWriteTimeout = 2 * time.Second

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewEventLogHandler creates a handler that mirrors WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(ctx, r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog records the request path carried by ctx, then inserts with
// its own context so the event survives a cancelled request. Insert failures
// are dropped; logging them would recurse.
func (h *EventLogHandler) writeToEventLog(reqCtx context.Context, r slog.Record) {
	attrs := make(map[string]string, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})

	category := attrs["category"]
	if category == "" {
		category = inferCategory(r.Message)
	}
	userID := attrs["user_id"]
	ip := attrs["ip"]
	if ip == "" {
		ip = attrs["client_ip"]
	}
	delete(attrs, "category")
	delete(attrs, "user_id")
	if _, ok := attrs["path"]; !ok {
		if path := middleware.GetRequestPath(reqCtx); path != "" {
			attrs["path"] = path
		}
	}

	metadata := "{}"
	if len(attrs) > 0 {
		if b, err := json.Marshal(attrs); err == nil {
			metadata = string(b)
		}
	}

	createdAt := r.Time
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventWriteTimeout)
	defer cancel()

	_, _ = h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     levelName(r.Level),
		Category:  category,
		Message:   r.Message,
		UserID:    sql.NullString{String: userID, Valid: userID != ""},
		IpAddress: ip,
		Metadata:  metadata,
		CreatedAt: createdAt,
	})
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// inferCategory guesses a category from message keywords when the record
// carries no category attribute.
func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "logout") || strings.Contains(msg, "session"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "csrf") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "locked"):
		return model.EventCategorySecurity
	case strings.Contains(msg, "order"):
		return model.EventCategoryOrder
	case strings.Contains(msg, "service") || strings.Contains(msg, "portfolio") ||
		strings.Contains(msg, "testimonial") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return model.EventCategoryConfig
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the audit event log used by handlers and
// background jobs.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
)

// EventService records audit events and prunes old ones.
type EventService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
		now:     time.Now,
	}
}

// LogEvent creates a new event log entry. A failed insert is logged and
// returned; callers on the request path usually ignore it.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *string, ipAddress string, metadata map[string]any) error {
	var nullUserID sql.NullString
	if userID != nil && *userID != "" {
		nullUserID = sql.NullString{String: *userID, Valid: true}
	}

	metadataJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    nullUserID,
		IpAddress: ipAddress,
		Metadata:  metadataJSON,
		CreatedAt: s.now(),
	})
	if err != nil {
		// Logged at INFO so the event log handler does not try to insert it again.
		slog.Info("failed to record event", "error", err, "event_category", category)
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *string, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, ipAddress, metadata)
}

// LogContentEvent logs a content mutation.
func (s *EventService) LogContentEvent(ctx context.Context, message string, userID *string, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryContent, message, userID, ipAddress, metadata)
}

// LogOrderEvent logs an order-related event.
func (s *EventService) LogOrderEvent(ctx context.Context, message string, userID *string, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryOrder, message, userID, ipAddress, metadata)
}

// LogConfigEvent logs a page settings change.
func (s *EventService) LogConfigEvent(ctx context.Context, message string, userID *string, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryConfig, message, userID, ipAddress, metadata)
}

// LogSystemEvent logs a system-related event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, nil, "", metadata)
}

// EventPage is one page of the event log.
type EventPage struct {
	Events   []model.Event
	Total    int64
	Page     int
	PerPage  int
	Category string
}

// TotalPages returns the number of pages for the current filter.
func (p EventPage) TotalPages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// ListEvents returns one page of events, newest first, optionally
// filtered by category. page is 1-based.
func (s *EventService) ListEvents(ctx context.Context, category string, page, perPage int) (EventPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	offset := int64((page - 1) * perPage)

	var (
		rows  []store.Event
		total int64
		err   error
	)
	if category != "" {
		rows, err = s.queries.ListEventsByCategory(ctx, store.ListEventsByCategoryParams{
			Category: category, Limit: int64(perPage), Offset: offset,
		})
		if err == nil {
			total, err = s.queries.CountEventsByCategory(ctx, category)
		}
	} else {
		rows, err = s.queries.ListEvents(ctx, store.ListEventsParams{Limit: int64(perPage), Offset: offset})
		if err == nil {
			total, err = s.queries.CountEvents(ctx)
		}
	}
	if err != nil {
		return EventPage{}, fmt.Errorf("listing events: %w", err)
	}

	events := make([]model.Event, 0, len(rows))
	for _, e := range rows {
		events = append(events, model.EventFromStore(e))
	}
	return EventPage{Events: events, Total: total, Page: page, PerPage: perPage, Category: category}, nil
}

// DeleteOldEvents removes events older than olderThan and returns how many
// were deleted.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

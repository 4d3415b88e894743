// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, level, category, message, user_id, ip_address, metadata, created_at`

func scanEvent(row scanner) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.IpAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullString
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `INSERT INTO events (level, category, message, user_id, ip_address, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	metadata := arg.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	return scanEvent(q.db.QueryRowContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.IpAddress, metadata, arg.CreatedAt))
}

type ListEventsParams struct {
	Limit  int64
	Offset int64
}

const listEvents = `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

type ListEventsByCategoryParams struct {
	Category string
	Limit    int64
	Offset   int64
}

const listEventsByCategory = `SELECT ` + eventColumns + ` FROM events WHERE category = ?
ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

func (q *Queries) ListEventsByCategory(ctx context.Context, arg ListEventsByCategoryParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByCategory, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

const countEvents = `SELECT COUNT(*) FROM events`

func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&n)
	return n, err
}

const countEventsByCategory = `SELECT COUNT(*) FROM events WHERE category = ?`

func (q *Queries) CountEventsByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEventsByCategory, category).Scan(&n)
	return n, err
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore removes events created before cutoff and returns the count removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

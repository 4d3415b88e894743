// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const pageContentColumns = `id, section, title, subtitle, content, image_url, button_text, button_link, created_at, updated_at`

func scanPageContent(row scanner) (PageContent, error) {
	var p PageContent
	err := row.Scan(&p.ID, &p.Section, &p.Title, &p.Subtitle, &p.Content, &p.ImageUrl,
		&p.ButtonText, &p.ButtonLink, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listPageContents = `SELECT ` + pageContentColumns + ` FROM page_contents ORDER BY section ASC`

func (q *Queries) ListPageContents(ctx context.Context) ([]PageContent, error) {
	rows, err := q.db.QueryContext(ctx, listPageContents)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPageContent)
}

const getPageContentBySection = `SELECT ` + pageContentColumns + ` FROM page_contents WHERE section = ? LIMIT 1`

func (q *Queries) GetPageContentBySection(ctx context.Context, section string) (PageContent, error) {
	return scanPageContent(q.db.QueryRowContext(ctx, getPageContentBySection, section))
}

type UpsertPageContentParams struct {
	ID         string
	Section    string
	Title      sql.NullString
	Subtitle   sql.NullString
	Content    sql.NullString
	ImageUrl   sql.NullString
	ButtonText sql.NullString
	ButtonLink sql.NullString
	Now        time.Time
}

const upsertPageContent = `INSERT INTO page_contents (id, section, title, subtitle, content, image_url, button_text, button_link, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(section) DO UPDATE SET
    title = excluded.title,
    subtitle = excluded.subtitle,
    content = excluded.content,
    image_url = excluded.image_url,
    button_text = excluded.button_text,
    button_link = excluded.button_link,
    updated_at = excluded.updated_at
RETURNING ` + pageContentColumns

// UpsertPageContent creates the section or replaces its fields.
func (q *Queries) UpsertPageContent(ctx context.Context, arg UpsertPageContentParams) (PageContent, error) {
	return scanPageContent(q.db.QueryRowContext(ctx, upsertPageContent,
		newID(arg.ID), arg.Section, arg.Title, arg.Subtitle, arg.Content, arg.ImageUrl,
		arg.ButtonText, arg.ButtonLink, arg.Now, arg.Now))
}

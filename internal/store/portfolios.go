// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const portfolioColumns = `id, title, slug, description, client_name, service_type, image_urls, technologies, demo_url, featured, created_at, updated_at`

func scanPortfolio(row scanner) (Portfolio, error) {
	var p Portfolio
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ClientName, &p.ServiceType,
		&p.ImageUrls, &p.Technologies, &p.DemoUrl, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) listPortfolios(ctx context.Context, query string, args ...any) ([]Portfolio, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPortfolio)
}

const listPortfolios = `SELECT ` + portfolioColumns + ` FROM portfolios ORDER BY created_at DESC`

func (q *Queries) ListPortfolios(ctx context.Context) ([]Portfolio, error) {
	return q.listPortfolios(ctx, listPortfolios)
}

const listFeaturedPortfolios = `SELECT ` + portfolioColumns + ` FROM portfolios
WHERE featured = 1 ORDER BY created_at DESC LIMIT ?`

// ListFeaturedPortfolios returns featured items, newest first. A negative limit means no limit.
func (q *Queries) ListFeaturedPortfolios(ctx context.Context, limit int64) ([]Portfolio, error) {
	return q.listPortfolios(ctx, listFeaturedPortfolios, limit)
}

type ListRelatedPortfoliosParams struct {
	ServiceType string
	ExcludeID   string
	Limit       int64
}

const listRelatedPortfolios = `SELECT ` + portfolioColumns + ` FROM portfolios
WHERE service_type = ? AND id != ? ORDER BY created_at DESC LIMIT ?`

func (q *Queries) ListRelatedPortfolios(ctx context.Context, arg ListRelatedPortfoliosParams) ([]Portfolio, error) {
	return q.listPortfolios(ctx, listRelatedPortfolios, arg.ServiceType, arg.ExcludeID, arg.Limit)
}

const getPortfolioByID = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE id = ? LIMIT 1`

func (q *Queries) GetPortfolioByID(ctx context.Context, id string) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, getPortfolioByID, id))
}

const getPortfolioBySlug = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE slug = ? LIMIT 1`

func (q *Queries) GetPortfolioBySlug(ctx context.Context, slug string) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, getPortfolioBySlug, slug))
}

const portfolioSlugExists = `SELECT COUNT(*) FROM portfolios WHERE slug = ?`

func (q *Queries) PortfolioSlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, portfolioSlugExists, slug).Scan(&n)
	return n, err
}

type PortfolioSlugExistsExcludingParams struct {
	Slug string
	ID   string
}

const portfolioSlugExistsExcluding = `SELECT COUNT(*) FROM portfolios WHERE slug = ? AND id != ?`

func (q *Queries) PortfolioSlugExistsExcluding(ctx context.Context, arg PortfolioSlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, portfolioSlugExistsExcluding, arg.Slug, arg.ID).Scan(&n)
	return n, err
}

type CreatePortfolioParams struct {
	ID           string
	Title        string
	Slug         string
	Description  string
	ClientName   sql.NullString
	ServiceType  string
	ImageUrls    string
	Technologies string
	DemoUrl      sql.NullString
	Featured     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createPortfolio = `INSERT INTO portfolios (id, title, slug, description, client_name, service_type, image_urls, technologies, demo_url, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + portfolioColumns

func (q *Queries) CreatePortfolio(ctx context.Context, arg CreatePortfolioParams) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, createPortfolio,
		newID(arg.ID), arg.Title, arg.Slug, arg.Description, arg.ClientName, arg.ServiceType,
		arg.ImageUrls, arg.Technologies, arg.DemoUrl, arg.Featured, arg.CreatedAt, arg.UpdatedAt))
}

type UpdatePortfolioParams struct {
	Title        string
	Slug         string
	Description  string
	ClientName   sql.NullString
	ServiceType  string
	ImageUrls    string
	Technologies string
	DemoUrl      sql.NullString
	Featured     bool
	UpdatedAt    time.Time
	ID           string
}

const updatePortfolio = `UPDATE portfolios SET title = ?, slug = ?, description = ?, client_name = ?, service_type = ?,
image_urls = ?, technologies = ?, demo_url = ?, featured = ?, updated_at = ?
WHERE id = ?
RETURNING ` + portfolioColumns

func (q *Queries) UpdatePortfolio(ctx context.Context, arg UpdatePortfolioParams) (Portfolio, error) {
	return scanPortfolio(q.db.QueryRowContext(ctx, updatePortfolio,
		arg.Title, arg.Slug, arg.Description, arg.ClientName, arg.ServiceType,
		arg.ImageUrls, arg.Technologies, arg.DemoUrl, arg.Featured, arg.UpdatedAt, arg.ID))
}

const deletePortfolio = `DELETE FROM portfolios WHERE id = ?`

func (q *Queries) DeletePortfolio(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePortfolio, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countPortfolios = `SELECT COUNT(*) FROM portfolios`

func (q *Queries) CountPortfolios(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPortfolios).Scan(&n)
	return n, err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const serviceColumns = `id, title, slug, description, features, price, image_url, is_popular, is_active, created_at, updated_at`

func scanService(row scanner) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.Features, &s.Price, &s.ImageUrl,
		&s.IsPopular, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) listServices(ctx context.Context, query string, args ...any) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanService)
}

const listServices = `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC`

// ListServices returns every service, newest first.
func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx, listServices)
}

const listActiveServices = `SELECT ` + serviceColumns + ` FROM services
WHERE is_active = 1 ORDER BY is_popular DESC, title ASC`

// ListActiveServices returns active services, popular first then by title.
func (q *Queries) ListActiveServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx, listActiveServices)
}

const listFeaturedServices = `SELECT ` + serviceColumns + ` FROM services
WHERE is_active = 1 ORDER BY is_popular DESC, created_at DESC LIMIT ?`

// ListFeaturedServices returns up to limit active services, popular first then newest.
func (q *Queries) ListFeaturedServices(ctx context.Context, limit int64) ([]Service, error) {
	return q.listServices(ctx, listFeaturedServices, limit)
}

type ListRelatedServicesParams struct {
	ExcludeID string
	Limit     int64
}

const listRelatedServices = `SELECT ` + serviceColumns + ` FROM services
WHERE is_active = 1 AND id != ? ORDER BY created_at DESC LIMIT ?`

func (q *Queries) ListRelatedServices(ctx context.Context, arg ListRelatedServicesParams) ([]Service, error) {
	return q.listServices(ctx, listRelatedServices, arg.ExcludeID, arg.Limit)
}

const getServiceByID = `SELECT ` + serviceColumns + ` FROM services WHERE id = ? LIMIT 1`

func (q *Queries) GetServiceByID(ctx context.Context, id string) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getServiceByID, id))
}

const getServiceBySlug = `SELECT ` + serviceColumns + ` FROM services WHERE slug = ? LIMIT 1`

func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getServiceBySlug, slug))
}

const serviceSlugExists = `SELECT COUNT(*) FROM services WHERE slug = ?`

func (q *Queries) ServiceSlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, serviceSlugExists, slug).Scan(&n)
	return n, err
}

type ServiceSlugExistsExcludingParams struct {
	Slug string
	ID   string
}

const serviceSlugExistsExcluding = `SELECT COUNT(*) FROM services WHERE slug = ? AND id != ?`

func (q *Queries) ServiceSlugExistsExcluding(ctx context.Context, arg ServiceSlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, serviceSlugExistsExcluding, arg.Slug, arg.ID).Scan(&n)
	return n, err
}

type CreateServiceParams struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Features    string
	Price       sql.NullString
	ImageUrl    sql.NullString
	IsPopular   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createService = `INSERT INTO services (id, title, slug, description, features, price, image_url, is_popular, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + serviceColumns

func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, createService,
		newID(arg.ID), arg.Title, arg.Slug, arg.Description, arg.Features, arg.Price, arg.ImageUrl,
		arg.IsPopular, arg.IsActive, arg.CreatedAt, arg.UpdatedAt))
}

type UpdateServiceParams struct {
	Title       string
	Slug        string
	Description string
	Features    string
	Price       sql.NullString
	ImageUrl    sql.NullString
	IsPopular   bool
	IsActive    bool
	UpdatedAt   time.Time
	ID          string
}

const updateService = `UPDATE services SET title = ?, slug = ?, description = ?, features = ?, price = ?, image_url = ?,
is_popular = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + serviceColumns

func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, updateService,
		arg.Title, arg.Slug, arg.Description, arg.Features, arg.Price, arg.ImageUrl,
		arg.IsPopular, arg.IsActive, arg.UpdatedAt, arg.ID))
}

const deleteService = `DELETE FROM services WHERE id = ?`

// DeleteService removes a service and reports how many rows were deleted.
func (q *Queries) DeleteService(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteService, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countServices = `SELECT COUNT(*) FROM services`

func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countServices).Scan(&n)
	return n, err
}

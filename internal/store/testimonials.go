// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const testimonialColumns = `id, name, position, company, content, rating, image_url, featured, created_at, updated_at`

func scanTestimonial(row scanner) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Content, &t.Rating, &t.ImageUrl,
		&t.Featured, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const listTestimonials = `SELECT ` + testimonialColumns + ` FROM testimonials
ORDER BY featured DESC, created_at DESC`

// ListTestimonials returns featured testimonials first, then the newest.
func (q *Queries) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, listTestimonials)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTestimonial)
}

const listFeaturedTestimonials = `SELECT ` + testimonialColumns + ` FROM testimonials
WHERE featured = 1 ORDER BY created_at DESC LIMIT ?`

func (q *Queries) ListFeaturedTestimonials(ctx context.Context, limit int64) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, listFeaturedTestimonials, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTestimonial)
}

const getTestimonialByID = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = ? LIMIT 1`

func (q *Queries) GetTestimonialByID(ctx context.Context, id string) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, getTestimonialByID, id))
}

type CreateTestimonialParams struct {
	ID        string
	Name      string
	Position  sql.NullString
	Company   sql.NullString
	Content   string
	Rating    int64
	ImageUrl  sql.NullString
	Featured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createTestimonial = `INSERT INTO testimonials (id, name, position, company, content, rating, image_url, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + testimonialColumns

func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, createTestimonial,
		newID(arg.ID), arg.Name, arg.Position, arg.Company, arg.Content, arg.Rating, arg.ImageUrl,
		arg.Featured, arg.CreatedAt, arg.UpdatedAt))
}

type UpdateTestimonialParams struct {
	Name      string
	Position  sql.NullString
	Company   sql.NullString
	Content   string
	Rating    int64
	ImageUrl  sql.NullString
	Featured  bool
	UpdatedAt time.Time
	ID        string
}

const updateTestimonial = `UPDATE testimonials SET name = ?, position = ?, company = ?, content = ?, rating = ?,
image_url = ?, featured = ?, updated_at = ?
WHERE id = ?
RETURNING ` + testimonialColumns

func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, updateTestimonial,
		arg.Name, arg.Position, arg.Company, arg.Content, arg.Rating, arg.ImageUrl,
		arg.Featured, arg.UpdatedAt, arg.ID))
}

const deleteTestimonial = `DELETE FROM testimonials WHERE id = ?`

func (q *Queries) DeleteTestimonial(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTestimonial, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countTestimonials = `SELECT COUNT(*) FROM testimonials`

func (q *Queries) CountTestimonials(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTestimonials).Scan(&n)
	return n, err
}

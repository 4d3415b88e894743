// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, slug, excerpt, content, cover_image, published, created_at, updated_at`

func scanBlogPost(row scanner) (BlogPost, error) {
	var b BlogPost
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.CoverImage, &b.Published,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE published = 1 ORDER BY created_at DESC`

func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedBlogPosts)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBlogPost)
}

const getPublishedBlogPostBySlug = `SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE slug = ? AND published = 1 LIMIT 1`

func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPostBySlug, slug))
}

type CreateBlogPostParams struct {
	ID         string
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage sql.NullString
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const createBlogPost = `INSERT INTO blog_posts (id, title, slug, excerpt, content, cover_image, published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, createBlogPost,
		newID(arg.ID), arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.CoverImage, arg.Published,
		arg.CreatedAt, arg.UpdatedAt))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

type Service struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Features    string // JSON array
	Price       sql.NullString
	ImageUrl    sql.NullString
	IsPopular   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Portfolio struct {
	ID           string
	Title        string
	Slug         string
	Description  string
	ClientName   sql.NullString
	ServiceType  string
	ImageUrls    string // JSON array
	Technologies string // JSON array
	DemoUrl      sql.NullString
	Featured     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Testimonial struct {
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

type Order struct {
	ID        string
	Name      string
	Email     string
	Phone     sql.NullString
	ServiceID string
	Message   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderWithService is an order joined with the title of its service.
type OrderWithService struct {
	Order
	ServiceTitle string
}

type PageContent struct {
	ID         string
	Section    string
	Title      sql.NullString
	Subtitle   sql.NullString
	Content    sql.NullString
	ImageUrl   sql.NullString
	ButtonText sql.NullString
	ButtonLink sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BlogPost struct {
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

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullString
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}

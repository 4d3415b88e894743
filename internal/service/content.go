// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kedjora/kedjora-go/internal/cache"
	"github.com/kedjora/kedjora-go/internal/content"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/util"
)

// Actor identifies who performs a mutation, for the audit log.
type Actor struct {
	UserID *string
	IP     string
}

// ContentService validates and persists the managed content resources.
// Every successful mutation drops the public content cache and records an
// audit event.
type ContentService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	events  *EventService
	now     func() time.Time
}

// NewContentService creates a ContentService. cm may be nil.
func NewContentService(db *sql.DB, cm *cache.Manager, events *EventService) *ContentService {
	return &ContentService{
		db:      db,
		queries: store.New(db),
		cache:   cm,
		events:  events,
		now:     time.Now,
	}
}

// afterMutation invalidates cached public content and records the change.
func (s *ContentService) afterMutation(ctx context.Context, actor Actor, message string, metadata map[string]any) {
	s.cache.InvalidateContent(ctx)
	if s.events != nil {
		_ = s.events.LogContentEvent(ctx, message, actor.UserID, actor.IP, metadata)
	}
}

// notFound maps a missing row to ErrNotFound and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}

// checkSlug validates slug format and uniqueness. exists counts other
// records using the slug.
func checkSlug(slug string, exists func() (int64, error)) error {
	if !util.IsValidSlug(slug) {
		return invalid(MsgInvalidSlug)
	}
	n, err := exists()
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if n != 0 {
		return invalid(MsgSlugTaken)
	}
	return nil
}

// optional resolves an optional text field on update: nil keeps current,
// anything else replaces it and a blank value clears it.
func optional(in *string, current sql.NullString) sql.NullString {
	if in == nil {
		return current
	}
	return util.NullStringFromValue(*in)
}

// cleanList strips markup from every item and drops blanks.
func cleanList(items model.StringList) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = content.CleanText(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// ServiceInput is the body of a service create or update request. Nil
// booleans mean "not provided".
type ServiceInput struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Features    model.StringList `json:"features"`
	Price       *string          `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	IsPopular   *bool            `json:"isPopular"`
	IsActive    *bool            `json:"isActive"`
}

func (in *ServiceInput) normalize() []string {
	in.Title = content.CleanText(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = content.SanitizeHTML(in.Description)
	return cleanList(in.Features)
}

// ListServices returns services newest first, optionally only active ones.
func (s *ContentService) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	rows, err := s.queries.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	if activeOnly {
		active := rows[:0]
		for _, r := range rows {
			if r.IsActive {
				active = append(active, r)
			}
		}
		rows = active
	}
	return model.ServicesFromStore(rows), nil
}

// GetService returns one service by id.
func (s *ContentService) GetService(ctx context.Context, id string) (model.Service, error) {
	row, err := s.queries.GetServiceByID(ctx, id)
	if err != nil {
		return model.Service{}, notFound(err, "getting service")
	}
	return model.ServiceFromStore(row), nil
}

// CreateService validates and stores a new service. isPopular defaults to
// false and isActive to true when absent; explicit values are stored as given.
func (s *ContentService) CreateService(ctx context.Context, in ServiceInput, actor Actor) (model.Service, error) {
	features := in.normalize()
	if in.Title == "" || in.Slug == "" || in.Description == "" || len(features) == 0 {
		return model.Service{}, invalid(MsgMissingFields)
	}
	if err := checkSlug(in.Slug, func() (int64, error) {
		return s.queries.ServiceSlugExists(ctx, in.Slug)
	}); err != nil {
		return model.Service{}, err
	}

	now := s.now()
	row, err := s.queries.CreateService(ctx, store.CreateServiceParams{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Features:    model.EncodeList(features),
		Price:       util.NullStringFromPtr(in.Price),
		ImageUrl:    util.NullStringFromPtr(in.ImageURL),
		IsPopular:   util.BoolOr(in.IsPopular, false),
		IsActive:    util.BoolOr(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Service{}, invalid(MsgSlugTaken)
		}
		return model.Service{}, fmt.Errorf("creating service: %w", err)
	}

	s.afterMutation(ctx, actor, "Service created", map[string]any{"service_id": row.ID, "slug": row.Slug})
	return model.ServiceFromStore(row), nil
}

// UpdateService replaces the fields of a service. An empty slug keeps the
// current one; absent optional fields and booleans keep their stored value.
func (s *ContentService) UpdateService(ctx context.Context, id string, in ServiceInput, actor Actor) (model.Service, error) {
	current, err := s.queries.GetServiceByID(ctx, id)
	if err != nil {
		return model.Service{}, notFound(err, "getting service")
	}

	features := in.normalize()
	if in.Title == "" || in.Description == "" || len(features) == 0 {
		return model.Service{}, invalid(MsgMissingFields)
	}

	slug := current.Slug
	if in.Slug != "" && in.Slug != current.Slug {
		if err := checkSlug(in.Slug, func() (int64, error) {
			return s.queries.ServiceSlugExistsExcluding(ctx, store.ServiceSlugExistsExcludingParams{Slug: in.Slug, ID: id})
		}); err != nil {
			return model.Service{}, err
		}
		slug = in.Slug
	}

	row, err := s.queries.UpdateService(ctx, store.UpdateServiceParams{
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		Features:    model.EncodeList(features),
		Price:       optional(in.Price, current.Price),
		ImageUrl:    optional(in.ImageURL, current.ImageUrl),
		IsPopular:   util.BoolOr(in.IsPopular, current.IsPopular),
		IsActive:    util.BoolOr(in.IsActive, current.IsActive),
		UpdatedAt:   s.now(),
		ID:          id,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Service{}, invalid(MsgSlugTaken)
		}
		return model.Service{}, notFound(err, "updating service")
	}

	s.afterMutation(ctx, actor, "Service updated", map[string]any{"service_id": id, "slug": row.Slug})
	return model.ServiceFromStore(row), nil
}

// DeleteService removes a service. It fails with ErrInUse while orders
// reference it.
func (s *ContentService) DeleteService(ctx context.Context, id string, actor Actor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	orders, err := qtx.CountOrdersForService(ctx, id)
	if err != nil {
		return fmt.Errorf("counting orders: %w", err)
	}
	if orders > 0 {
		return ErrInUse
	}

	n, err := qtx.DeleteService(ctx, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return fmt.Errorf("deleting service: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	s.afterMutation(ctx, actor, "Service deleted", map[string]any{"service_id": id})
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kedjora/kedjora-go/internal/content"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/util"
)

// PortfolioInput is the body of a portfolio create or update request.
type PortfolioInput struct {
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	ClientName   *string          `json:"clientName"`
	ServiceType  string           `json:"serviceType"`
	ImageURLs    model.StringList `json:"imageUrls"`
	Technologies model.StringList `json:"technologies"`
	DemoURL      *string          `json:"demoUrl"`
	Featured     *bool            `json:"featured"`
}

func (in *PortfolioInput) normalize() (images, techs []string) {
	in.Title = content.CleanText(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = content.SanitizeHTML(in.Description)
	in.ServiceType = content.CleanText(in.ServiceType)
	for _, u := range in.ImageURLs {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	return images, cleanList(in.Technologies)
}

func (in *PortfolioInput) missing(images, techs []string) bool {
	return in.Title == "" || in.Description == "" || in.ServiceType == "" || len(images) == 0 || len(techs) == 0
}

// ListPortfolios returns portfolio items newest first, optionally only
// featured ones.
func (s *ContentService) ListPortfolios(ctx context.Context, featuredOnly bool) ([]model.Portfolio, error) {
	var (
		rows []store.Portfolio
		err  error
	)
	if featuredOnly {
		rows, err = s.queries.ListFeaturedPortfolios(ctx, -1)
	} else {
		rows, err = s.queries.ListPortfolios(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	return model.PortfoliosFromStore(rows), nil
}

// GetPortfolio returns one portfolio item by id.
func (s *ContentService) GetPortfolio(ctx context.Context, id string) (model.Portfolio, error) {
	row, err := s.queries.GetPortfolioByID(ctx, id)
	if err != nil {
		return model.Portfolio{}, notFound(err, "getting portfolio")
	}
	return model.PortfolioFromStore(row), nil
}

// CreatePortfolio validates and stores a new portfolio item. featured
// defaults to false.
func (s *ContentService) CreatePortfolio(ctx context.Context, in PortfolioInput, actor Actor) (model.Portfolio, error) {
	images, techs := in.normalize()
	if in.Slug == "" || in.missing(images, techs) {
		return model.Portfolio{}, invalid(MsgMissingFields)
	}
	if err := checkSlug(in.Slug, func() (int64, error) {
		return s.queries.PortfolioSlugExists(ctx, in.Slug)
	}); err != nil {
		return model.Portfolio{}, err
	}

	now := s.now()
	row, err := s.queries.CreatePortfolio(ctx, store.CreatePortfolioParams{
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		ClientName:   util.NullStringFromPtr(in.ClientName),
		ServiceType:  in.ServiceType,
		ImageUrls:    model.EncodeList(images),
		Technologies: model.EncodeList(techs),
		DemoUrl:      util.NullStringFromPtr(in.DemoURL),
		Featured:     util.BoolOr(in.Featured, false),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Portfolio{}, invalid(MsgSlugTaken)
		}
		return model.Portfolio{}, fmt.Errorf("creating portfolio: %w", err)
	}

	s.afterMutation(ctx, actor, "Portfolio item created", map[string]any{"portfolio_id": row.ID, "slug": row.Slug})
	return model.PortfolioFromStore(row), nil
}

// UpdatePortfolio replaces the fields of a portfolio item. An empty slug
// keeps the current one and an absent featured flag keeps its value.
func (s *ContentService) UpdatePortfolio(ctx context.Context, id string, in PortfolioInput, actor Actor) (model.Portfolio, error) {
	current, err := s.queries.GetPortfolioByID(ctx, id)
	if err != nil {
		return model.Portfolio{}, notFound(err, "getting portfolio")
	}

	images, techs := in.normalize()
	if in.missing(images, techs) {
		return model.Portfolio{}, invalid(MsgMissingFields)
	}

	slug := current.Slug
	if in.Slug != "" && in.Slug != current.Slug {
		if err := checkSlug(in.Slug, func() (int64, error) {
			return s.queries.PortfolioSlugExistsExcluding(ctx, store.PortfolioSlugExistsExcludingParams{Slug: in.Slug, ID: id})
		}); err != nil {
			return model.Portfolio{}, err
		}
		slug = in.Slug
	}

	row, err := s.queries.UpdatePortfolio(ctx, store.UpdatePortfolioParams{
		Title:        in.Title,
		Slug:         slug,
		Description:  in.Description,
		ClientName:   optional(in.ClientName, current.ClientName),
		ServiceType:  in.ServiceType,
		ImageUrls:    model.EncodeList(images),
		Technologies: model.EncodeList(techs),
		DemoUrl:      optional(in.DemoURL, current.DemoUrl),
		Featured:     util.BoolOr(in.Featured, current.Featured),
		UpdatedAt:    s.now(),
		ID:           id,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Portfolio{}, invalid(MsgSlugTaken)
		}
		return model.Portfolio{}, notFound(err, "updating portfolio")
	}

	s.afterMutation(ctx, actor, "Portfolio item updated", map[string]any{"portfolio_id": id, "slug": row.Slug})
	return model.PortfolioFromStore(row), nil
}

// DeletePortfolio removes a portfolio item.
func (s *ContentService) DeletePortfolio(ctx context.Context, id string, actor Actor) error {
	n, err := s.queries.DeletePortfolio(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.afterMutation(ctx, actor, "Portfolio item deleted", map[string]any{"portfolio_id": id})
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kedjora/kedjora-go/internal/cache"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
)

// Limits for the public pages.
const (
	HomeFeaturedServices   = 4
	HomeFeaturedPortfolios = 3
	RelatedLimit           = 3
)

// Catalog serves the public site. Reads go through the content cache,
// which ContentService drops on every mutation.
type Catalog struct {
	queries *store.Queries
	cache   *cache.Manager
}

// NewCatalog creates a Catalog. cm may be nil to read straight from the database.
func NewCatalog(db *sql.DB, cm *cache.Manager) *Catalog {
	return &Catalog{queries: store.New(db), cache: cm}
}

// ActiveServices returns the active services, popular first then by title.
func (c *Catalog) ActiveServices(ctx context.Context) ([]model.Service, error) {
	return cache.Remember(ctx, c.cache, "services:active", func(ctx context.Context) ([]model.Service, error) {
		rows, err := c.queries.ListActiveServices(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing active services: %w", err)
		}
		return model.ServicesFromStore(rows), nil
	})
}

// FeaturedServices returns the services shown on the home page.
func (c *Catalog) FeaturedServices(ctx context.Context) ([]model.Service, error) {
	return cache.Remember(ctx, c.cache, "services:featured", func(ctx context.Context) ([]model.Service, error) {
		rows, err := c.queries.ListFeaturedServices(ctx, HomeFeaturedServices)
		if err != nil {
			return nil, fmt.Errorf("listing featured services: %w", err)
		}
		return model.ServicesFromStore(rows), nil
	})
}

// ServiceBySlug returns an active service. Inactive services are not found.
func (c *Catalog) ServiceBySlug(ctx context.Context, slug string) (model.Service, error) {
	return cache.Remember(ctx, c.cache, "services:slug:"+slug, func(ctx context.Context) (model.Service, error) {
		row, err := c.queries.GetServiceBySlug(ctx, slug)
		if err != nil {
			return model.Service{}, notFound(err, "getting service")
		}
		if !row.IsActive {
			return model.Service{}, ErrNotFound
		}
		return model.ServiceFromStore(row), nil
	})
}

// RelatedServices returns other active services for a service page.
func (c *Catalog) RelatedServices(ctx context.Context, excludeID string) ([]model.Service, error) {
	return cache.Remember(ctx, c.cache, "services:related:"+excludeID, func(ctx context.Context) ([]model.Service, error) {
		rows, err := c.queries.ListRelatedServices(ctx, store.ListRelatedServicesParams{ExcludeID: excludeID, Limit: RelatedLimit})
		if err != nil {
			return nil, fmt.Errorf("listing related services: %w", err)
		}
		return model.ServicesFromStore(rows), nil
	})
}

// Portfolios returns every portfolio item, newest first.
func (c *Catalog) Portfolios(ctx context.Context) ([]model.Portfolio, error) {
	return cache.Remember(ctx, c.cache, "portfolio:all", func(ctx context.Context) ([]model.Portfolio, error) {
		rows, err := c.queries.ListPortfolios(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing portfolios: %w", err)
		}
		return model.PortfoliosFromStore(rows), nil
	})
}

// FeaturedPortfolios returns the portfolio items shown on the home page.
func (c *Catalog) FeaturedPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	return cache.Remember(ctx, c.cache, "portfolio:featured", func(ctx context.Context) ([]model.Portfolio, error) {
		rows, err := c.queries.ListFeaturedPortfolios(ctx, HomeFeaturedPortfolios)
		if err != nil {
			return nil, fmt.Errorf("listing featured portfolios: %w", err)
		}
		return model.PortfoliosFromStore(rows), nil
	})
}

// PortfolioBySlug returns one portfolio item.
func (c *Catalog) PortfolioBySlug(ctx context.Context, slug string) (model.Portfolio, error) {
	return cache.Remember(ctx, c.cache, "portfolio:slug:"+slug, func(ctx context.Context) (model.Portfolio, error) {
		row, err := c.queries.GetPortfolioBySlug(ctx, slug)
		if err != nil {
			return model.Portfolio{}, notFound(err, "getting portfolio")
		}
		return model.PortfolioFromStore(row), nil
	})
}

// RelatedPortfolios returns other items of the same service type.
func (c *Catalog) RelatedPortfolios(ctx context.Context, p model.Portfolio) ([]model.Portfolio, error) {
	return cache.Remember(ctx, c.cache, "portfolio:related:"+p.ID, func(ctx context.Context) ([]model.Portfolio, error) {
		rows, err := c.queries.ListRelatedPortfolios(ctx, store.ListRelatedPortfoliosParams{
			ServiceType: p.ServiceType,
			ExcludeID:   p.ID,
			Limit:       RelatedLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("listing related portfolios: %w", err)
		}
		return model.PortfoliosFromStore(rows), nil
	})
}

// Testimonials returns every testimonial, featured first.
func (c *Catalog) Testimonials(ctx context.Context) ([]model.Testimonial, error) {
	return cache.Remember(ctx, c.cache, "testimonials:all", func(ctx context.Context) ([]model.Testimonial, error) {
		rows, err := c.queries.ListTestimonials(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing testimonials: %w", err)
		}
		return model.TestimonialsFromStore(rows), nil
	})
}

// FeaturedTestimonials returns the featured testimonials, newest first.
func (c *Catalog) FeaturedTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return cache.Remember(ctx, c.cache, "testimonials:featured", func(ctx context.Context) ([]model.Testimonial, error) {
		rows, err := c.queries.ListFeaturedTestimonials(ctx, -1)
		if err != nil {
			return nil, fmt.Errorf("listing featured testimonials: %w", err)
		}
		return model.TestimonialsFromStore(rows), nil
	})
}

// Section returns one page section. A missing section yields a zero value
// with only Section set so templates fall back to their defaults.
func (c *Catalog) Section(ctx context.Context, section string) (model.PageContent, error) {
	return cache.Remember(ctx, c.cache, "section:"+section, func(ctx context.Context) (model.PageContent, error) {
		row, err := c.queries.GetPageContentBySection(ctx, section)
		if errors.Is(err, store.ErrNotFound) {
			return model.PageContent{Section: section}, nil
		}
		if err != nil {
			return model.PageContent{}, fmt.Errorf("getting section: %w", err)
		}
		return model.PageContentFromStore(row), nil
	})
}

// BlogPosts returns published posts, newest first.
func (c *Catalog) BlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return cache.Remember(ctx, c.cache, "blog:all", func(ctx context.Context) ([]model.BlogPost, error) {
		rows, err := c.queries.ListPublishedBlogPosts(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing blog posts: %w", err)
		}
		return model.BlogPostsFromStore(rows), nil
	})
}

// BlogPostBySlug returns one published post.
func (c *Catalog) BlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return cache.Remember(ctx, c.cache, "blog:slug:"+slug, func(ctx context.Context) (model.BlogPost, error) {
		row, err := c.queries.GetPublishedBlogPostBySlug(ctx, slug)
		if err != nil {
			return model.BlogPost{}, notFound(err, "getting blog post")
		}
		return model.BlogPostFromStore(row), nil
	})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/seo"
	"github.com/kedjora/kedjora-go/internal/service"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	catalog        *service.Catalog
	isDev          bool
	trustForwarded bool
}

// NewSEOHandler creates a new SEOHandler. Crawlers are kept out entirely in
// development.
func NewSEOHandler(catalog *service.Catalog, isDev, trustForwarded bool) *SEOHandler {
	return &SEOHandler{catalog: catalog, isDev: isDev, trustForwarded: trustForwarded}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.Robots(seo.RobotsConfig{
		SiteURL:     middleware.SiteURL(r, h.trustForwarded),
		DisallowAll: h.isDev,
	})
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml. It lists active services, every
// portfolio item and published posts.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b := seo.NewSitemapBuilder(middleware.SiteURL(r, h.trustForwarded))

	services, err := h.catalog.ActiveServices(ctx)
	if err != nil {
		logAndInternalError(w, "sitemap: listing services", "error", err)
		return
	}
	entries := make([]seo.Entry, 0, len(services))
	for _, s := range services {
		entries = append(entries, seo.Entry{Slug: s.Slug, UpdatedAt: s.UpdatedAt})
	}
	b.Add(RouteServices, entries)

	items, err := h.catalog.Portfolios(ctx)
	if err != nil {
		logAndInternalError(w, "sitemap: listing portfolio", "error", err)
		return
	}
	entries = make([]seo.Entry, 0, len(items))
	for _, p := range items {
		entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	b.Add(RoutePortfolio, entries)

	posts, err := h.catalog.BlogPosts(ctx)
	if err != nil {
		logAndInternalError(w, "sitemap: listing posts", "error", err)
		return
	}
	entries = make([]seo.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	b.Add(RouteBlog, entries)

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "sitemap: encoding", "error", err)
		return
	}
	w.Header().Set(HeaderContentType, "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}

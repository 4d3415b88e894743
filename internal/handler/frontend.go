// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
)

// FrontendHandler serves the public site.
type FrontendHandler struct {
	catalog  *service.Catalog
	content  *service.ContentService
	renderer *render.Renderer
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(catalog *service.Catalog, content *service.ContentService, renderer *render.Renderer) *FrontendHandler {
	return &FrontendHandler{catalog: catalog, content: content, renderer: renderer}
}

// HomeData is the template data of the home page.
type HomeData struct {
	Section      model.PageContent
	Services     []model.Service
	Portfolios   []model.Portfolio
	Testimonials []model.Testimonial
}

// ServiceData is the template data of a service page.
type ServiceData struct {
	Service model.Service
	Related []model.Service
}

// PortfolioData is the template data of a portfolio item page.
type PortfolioData struct {
	Item    model.Portfolio
	Related []model.Portfolio
}

// ContactData is the template data of the contact page.
type ContactData struct {
	Section  model.PageContent
	Services []model.Service
	Selected string
}

// load runs fetch and answers 500 on failure. The bool reports success.
func load[T any](w http.ResponseWriter, r *http.Request, what string, fetch func() (T, error)) (T, bool) {
	v, err := fetch()
	if err != nil {
		logAndInternalError(w, "failed to load "+what, "error", err, "path", r.URL.Path)
		return v, false
	}
	return v, true
}

func (h *FrontendHandler) page(w http.ResponseWriter, r *http.Request, name, title, description string, data any) {
	h.renderer.RenderPage(w, r, "public/"+name, render.TemplateData{
		Title:       title,
		Description: description,
		Data:        data,
	})
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		data HomeData
		ok   bool
	)
	if data.Section, ok = load(w, r, "home section", func() (model.PageContent, error) { return h.catalog.Section(ctx, service.SectionHome) }); !ok {
		return
	}
	if data.Services, ok = load(w, r, "featured services", func() ([]model.Service, error) { return h.catalog.FeaturedServices(ctx) }); !ok {
		return
	}
	if data.Portfolios, ok = load(w, r, "featured portfolio", func() ([]model.Portfolio, error) { return h.catalog.FeaturedPortfolios(ctx) }); !ok {
		return
	}
	if data.Testimonials, ok = load(w, r, "featured testimonials", func() ([]model.Testimonial, error) { return h.catalog.FeaturedTestimonials(ctx) }); !ok {
		return
	}
	h.page(w, r, "home", "Digital agency", "Web, mobile and design services.", data)
}

// Services handles GET /services.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	list, ok := load(w, r, "services", func() ([]model.Service, error) { return h.catalog.ActiveServices(r.Context()) })
	if !ok {
		return
	}
	h.page(w, r, "services", "Services", "What we offer.", list)
}

// Service handles GET /services/{slug}. Inactive services are not found.
func (h *FrontendHandler) Service(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := requireEntity(w, r, h.renderer, "service", func() (model.Service, error) {
		return h.catalog.ServiceBySlug(ctx, chi.URLParam(r, "slug"))
	})
	if !ok {
		return
	}
	related, ok := load(w, r, "related services", func() ([]model.Service, error) { return h.catalog.RelatedServices(ctx, svc.ID) })
	if !ok {
		return
	}
	h.page(w, r, "service", svc.Title, "", ServiceData{Service: svc, Related: related})
}

// Portfolio handles GET /portfolio.
func (h *FrontendHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	list, ok := load(w, r, "portfolio", func() ([]model.Portfolio, error) { return h.catalog.Portfolios(r.Context()) })
	if !ok {
		return
	}
	h.page(w, r, "portfolio", "Portfolio", "Selected work.", list)
}

// PortfolioItem handles GET /portfolio/{slug}.
func (h *FrontendHandler) PortfolioItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	item, ok := requireEntity(w, r, h.renderer, "portfolio item", func() (model.Portfolio, error) {
		return h.catalog.PortfolioBySlug(ctx, chi.URLParam(r, "slug"))
	})
	if !ok {
		return
	}
	related, ok := load(w, r, "related portfolio", func() ([]model.Portfolio, error) { return h.catalog.RelatedPortfolios(ctx, item) })
	if !ok {
		return
	}
	h.page(w, r, "portfolio_item", item.Title, "", PortfolioData{Item: item, Related: related})
}

// Blog handles GET /blog.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, ok := load(w, r, "blog posts", func() ([]model.BlogPost, error) { return h.catalog.BlogPosts(r.Context()) })
	if !ok {
		return
	}
	h.page(w, r, "blog", "Blog", "News and articles.", posts)
}

// BlogPost handles GET /blog/{slug}.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntity(w, r, h.renderer, "blog post", func() (model.BlogPost, error) {
		return h.catalog.BlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	})
	if !ok {
		return
	}
	h.page(w, r, "post", post.Title, post.Excerpt, post)
}

// Testimonials handles GET /testimonials.
func (h *FrontendHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	list, ok := load(w, r, "testimonials", func() ([]model.Testimonial, error) { return h.catalog.Testimonials(r.Context()) })
	if !ok {
		return
	}
	h.page(w, r, "testimonials", "Testimonials", "What our clients say.", list)
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	section, ok := load(w, r, "about section", func() (model.PageContent, error) { return h.catalog.Section(r.Context(), service.SectionAbout) })
	if !ok {
		return
	}
	h.page(w, r, "about", "About us", "", section)
}

// Contact handles GET /contact. ?service=<slug> preselects a service.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		data ContactData
		ok   bool
	)
	if data.Section, ok = load(w, r, "contact section", func() (model.PageContent, error) { return h.catalog.Section(ctx, service.SectionContact) }); !ok {
		return
	}
	if data.Services, ok = load(w, r, "services", func() ([]model.Service, error) { return h.catalog.ActiveServices(ctx) }); !ok {
		return
	}
	if slug := r.URL.Query().Get("service"); slug != "" {
		for _, s := range data.Services {
			if s.Slug == slug {
				data.Selected = s.ID
			}
		}
	}
	h.page(w, r, "contact", "Contact", "Tell us about your project.", data)
}

// SubmitContact handles POST /contact through the same validation as the
// order API.
func (h *FrontendHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectContact, "Invalid form data")
		return
	}

	actor := service.Actor{UserID: middleware.GetUserIDPtr(r), IP: middleware.ClientIP(r)}
	_, err := h.content.CreateOrder(r.Context(), orderFromForm(r), actor)
	if err != nil {
		if msg, ok := service.IsValidation(err); ok {
			flashError(w, r, h.renderer, redirectContact, msg)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, redirectContact, "Service not found")
			return
		}
		slog.ErrorContext(r.Context(), "contact form order failed", "error", err)
		flashError(w, r, h.renderer, redirectContact, "Something went wrong. Please try again.")
		return
	}
	flashSuccess(w, r, h.renderer, redirectContact, msgOrderReceived)
}

// NotFound renders the 404 page for unknown routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer)
}

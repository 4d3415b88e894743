// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the public site, the admin
// pages and the authentication surface.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
	"github.com/kedjora/kedjora-go/internal/shell"
	"github.com/kedjora/kedjora-go/internal/store"
)

// DashboardRecentOrders is the number of orders shown on the dashboard.
const DashboardRecentOrders = 5

// AdminHandler handles the admin pages. Every page is served behind the
// guard and the shell gate; forms post to the JSON API.
type AdminHandler struct {
	content  *service.ContentService
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(content *service.ContentService, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{content: content, renderer: renderer}
}

// FormData is the template data of an entity form. Entity is nil on create.
type FormData[T any] struct {
	Entity *T
	IsNew  bool
	Action string
	Method string
}

func newForm[T any](action string) FormData[T] {
	return FormData[T]{IsNew: true, Action: action, Method: http.MethodPost}
}

func editForm[T any](entity T, action string) FormData[T] {
	return FormData[T]{Entity: &entity, Action: action, Method: http.MethodPatch}
}

// OrderData is the template data of the order detail page.
type OrderData struct {
	Order    model.Order
	Statuses []string
}

// SettingsData is the template data of the page settings editor.
type SettingsData struct {
	Sections []string
	Values   map[string]model.PageContent
}

func (h *AdminHandler) page(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	h.renderer.RenderPage(w, r, "admin/"+name, shell.Page(r, title, data))
}

// adminEntity fetches an entity by the {id} URL parameter. A missing entity
// flashes and redirects to listURL.
func adminEntity[T any](w http.ResponseWriter, r *http.Request, renderer *render.Renderer, listURL, entityName string, fetch func(id string) (T, error)) (T, bool) {
	entity, err := fetch(chi.URLParam(r, "id"))
	if err == nil {
		return entity, true
	}
	var zero T
	if errors.Is(err, service.ErrNotFound) {
		flashError(w, r, renderer, listURL, entityName+" not found")
		return zero, false
	}
	slog.ErrorContext(r.Context(), "failed to get "+entityName, "error", err, "path", r.URL.Path)
	flashError(w, r, renderer, listURL, "Error loading "+entityName)
	return zero, false
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.Dashboard(r.Context(), DashboardRecentOrders)
	if err != nil {
		logAndInternalError(w, "failed to load dashboard", "error", err)
		return
	}
	h.page(w, r, "dashboard", "Dashboard", stats)
}

// Services handles GET /admin/services.
func (h *AdminHandler) Services(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListServices(r.Context(), false)
	if err != nil {
		logAndInternalError(w, "failed to list services", "error", err)
		return
	}
	h.page(w, r, "services", "Services", list)
}

// NewService handles GET /admin/services/new.
func (h *AdminHandler) NewService(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "service_form", "New service", newForm[model.Service]("/api/services"))
}

// EditService handles GET /admin/services/{id}/edit.
func (h *AdminHandler) EditService(w http.ResponseWriter, r *http.Request) {
	s, ok := adminEntity(w, r, h.renderer, redirectAdminServices, "Service", func(id string) (model.Service, error) {
		return h.content.GetService(r.Context(), id)
	})
	if !ok {
		return
	}
	h.page(w, r, "service_form", "Edit service", editForm(s, "/api/services/"+s.ID))
}

// DeleteService handles GET /admin/services/{id}/delete, the confirmation page.
func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	s, ok := adminEntity(w, r, h.renderer, redirectAdminServices, "Service", func(id string) (model.Service, error) {
		return h.content.GetService(r.Context(), id)
	})
	if !ok {
		return
	}
	h.page(w, r, "service_delete", "Delete service", s)
}

// Portfolio handles GET /admin/portfolio.
func (h *AdminHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListPortfolios(r.Context(), false)
	if err != nil {
		logAndInternalError(w, "failed to list portfolio", "error", err)
		return
	}
	h.page(w, r, "portfolio", "Portfolio", list)
}

// NewPortfolio handles GET /admin/portfolio/new.
func (h *AdminHandler) NewPortfolio(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "portfolio_form", "New portfolio item", newForm[model.Portfolio]("/api/portfolio"))
}

// EditPortfolio handles GET /admin/portfolio/{id}/edit.
func (h *AdminHandler) EditPortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := adminEntity(w, r, h.renderer, redirectAdmin+RoutePortfolio, "Portfolio item", func(id string) (model.Portfolio, error) {
		return h.content.GetPortfolio(r.Context(), id)
	})
	if !ok {
		return
	}
	h.page(w, r, "portfolio_form", "Edit portfolio item", editForm(p, "/api/portfolio/"+p.ID))
}

// Testimonials handles GET /admin/testimonials.
func (h *AdminHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListTestimonials(r.Context(), false)
	if err != nil {
		logAndInternalError(w, "failed to list testimonials", "error", err)
		return
	}
	h.page(w, r, "testimonials", "Testimonials", list)
}

// NewTestimonial handles GET /admin/testimonials/new.
func (h *AdminHandler) NewTestimonial(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "testimonial_form", "New testimonial", newForm[model.Testimonial]("/api/testimonials"))
}

// EditTestimonial handles GET /admin/testimonials/{id}/edit.
func (h *AdminHandler) EditTestimonial(w http.ResponseWriter, r *http.Request) {
	t, ok := adminEntity(w, r, h.renderer, redirectAdmin+RouteTestimonials, "Testimonial", func(id string) (model.Testimonial, error) {
		return h.content.GetTestimonial(r.Context(), id)
	})
	if !ok {
		return
	}
	h.page(w, r, "testimonial_form", "Edit testimonial", editForm(t, "/api/testimonials/"+t.ID))
}

// Orders handles GET /admin/orders.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListOrders(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list orders", "error", err)
		return
	}
	h.page(w, r, "orders", "Orders", list)
}

// Order handles GET /admin/orders/{id}.
func (h *AdminHandler) Order(w http.ResponseWriter, r *http.Request) {
	o, ok := adminEntity(w, r, h.renderer, redirectAdminOrders, "Order", func(id string) (model.Order, error) {
		return h.content.GetOrder(r.Context(), id)
	})
	if !ok {
		return
	}
	h.page(w, r, "order", "Order", OrderData{
		Order: o,
		Statuses: []string{
			store.OrderStatusPending,
			store.OrderStatusInProgress,
			store.OrderStatusCompleted,
			store.OrderStatusCancelled,
		},
	})
}

// Settings handles GET /admin/settings.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	values, err := h.content.SettingsBySection(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load settings", "error", err)
		return
	}
	h.page(w, r, "settings", "Page settings", SettingsData{
		Sections: service.EditableSections,
		Values:   values,
	})
}

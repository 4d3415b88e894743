// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API for the managed content resources.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/service"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content  *service.ContentService
	sessions middleware.SessionReader

	// orderLimit guards the public order endpoint when set.
	orderLimit func(http.Handler) http.Handler
}

// NewHandler creates a new API handler.
func NewHandler(content *service.ContentService, sessions middleware.SessionReader) *Handler {
	return &Handler{content: content, sessions: sessions}
}

// SetOrderLimit installs mw in front of POST /orders, the only public write.
func (h *Handler) SetOrderLimit(mw func(http.Handler) http.Handler) {
	h.orderLimit = mw
}

// Routes mounts the API resources on r. Mutating routes sit behind
// RequireSession; reads are public except orders.
func (h *Handler) Routes(r chi.Router) {
	auth := middleware.RequireSession(h.sessions)

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Get("/{id}", h.GetService)
		r.With(auth).Post("/", h.CreateService)
		r.With(auth).Patch("/{id}", h.UpdateService)
		r.With(auth).Put("/{id}", h.UpdateService)
		r.With(auth).Delete("/{id}", h.DeleteService)
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.ListPortfolios)
		r.Get("/{id}", h.GetPortfolio)
		r.With(auth).Post("/", h.CreatePortfolio)
		r.With(auth).Patch("/{id}", h.UpdatePortfolio)
		r.With(auth).Put("/{id}", h.UpdatePortfolio)
		r.With(auth).Delete("/{id}", h.DeletePortfolio)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", h.ListTestimonials)
		r.Get("/{id}", h.GetTestimonial)
		r.With(auth).Post("/", h.CreateTestimonial)
		r.With(auth).Patch("/{id}", h.UpdateTestimonial)
		r.With(auth).Put("/{id}", h.UpdateTestimonial)
		r.With(auth).Delete("/{id}", h.DeleteTestimonial)
	})

	r.Route("/orders", func(r chi.Router) {
		if h.orderLimit != nil {
			r.With(h.orderLimit).Post("/", h.CreateOrder)
		} else {
			r.Post("/", h.CreateOrder)
		}
		r.With(auth).Get("/", h.ListOrders)
		r.With(auth).Get("/{id}", h.GetOrder)
		r.With(auth).Patch("/{id}", h.UpdateOrder)
		r.With(auth).Delete("/{id}", h.DeleteOrder)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.ListSettings)
		r.With(auth, middleware.RequireRole(middleware.RoleAdmin)).Post("/", h.UpsertSetting)
	})
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a {success:false,error} response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeDeleted writes the response for a successful delete.
func writeDeleted(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// requireSession returns the acting user for a mutating request. It is the
// first statement of every mutating handler so the check holds even when a
// route is mounted without RequireSession.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	if _, ok := middleware.GetSession(r); !ok {
		tok, err := h.sessions.Read(r)
		if err != nil {
			middleware.WriteUnauthorized(w)
			return service.Actor{}, false
		}
		r = middleware.WithSession(r, tok)
	}
	return service.Actor{UserID: middleware.GetUserIDPtr(r), IP: middleware.ClientIP(r)}, true
}

// decodeJSON reads the request body into dst. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// queryFlag reports whether the named query parameter is "true".
func queryFlag(r *http.Request, name string) bool {
	return strings.EqualFold(r.URL.Query().Get(name), "true")
}

// writeServiceError maps a service error onto the response. entity names
// the resource in not-found messages, e.g. "Service".
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	if msg, ok := service.IsValidation(err); ok {
		WriteError(w, http.StatusBadRequest, msg)
		return
	}
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		WriteError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrInUse):
		WriteError(w, http.StatusConflict, entity+" is referenced by existing orders")
	default:
		slog.ErrorContext(r.Context(), "api request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

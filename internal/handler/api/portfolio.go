// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/service"
)

// ListPortfolios handles GET /api/portfolio. ?featured=true keeps featured items only.
func (h *Handler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListPortfolios(r.Context(), queryFlag(r, "featured"))
	if err != nil {
		writeServiceError(w, r, err, "Portfolio item")
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetPortfolio handles GET /api/portfolio/{id}.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.content.GetPortfolio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Portfolio item")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// CreatePortfolio handles POST /api/portfolio.
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.PortfolioInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.content.CreatePortfolio(r.Context(), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Portfolio item")
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// UpdatePortfolio handles PATCH /api/portfolio/{id}.
func (h *Handler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.PortfolioInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.content.UpdatePortfolio(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Portfolio item")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// DeletePortfolio handles DELETE /api/portfolio/{id}.
func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.content.DeletePortfolio(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeServiceError(w, r, err, "Portfolio item")
		return
	}
	writeDeleted(w)
}

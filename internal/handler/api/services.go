// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/service"
)

// ListServices handles GET /api/services. ?active=true hides inactive services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListServices(r.Context(), queryFlag(r, "active"))
	if err != nil {
		writeServiceError(w, r, err, "Service")
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetService handles GET /api/services/{id}.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	s, err := h.content.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Service")
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// CreateService handles POST /api/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.ServiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.content.CreateService(r.Context(), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Service")
		return
	}
	WriteJSON(w, http.StatusCreated, s)
}

// UpdateService handles PATCH /api/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.ServiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.content.UpdateService(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Service")
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// DeleteService handles DELETE /api/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteService(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeServiceError(w, r, err, "Service")
		return
	}
	writeDeleted(w)
}

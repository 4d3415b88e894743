// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/kedjora/kedjora-go/internal/service"
)

// ListSettings handles GET /api/settings, optionally filtered by ?section=.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListSettings(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		writeServiceError(w, r, err, "Section")
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// UpsertSetting handles POST /api/settings.
func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.PageContentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.content.UpsertSetting(r.Context(), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Section")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

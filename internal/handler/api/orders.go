// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/service"
)

// CreateOrder handles POST /api/orders. It is public.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in service.OrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	actor := service.Actor{UserID: middleware.GetUserIDPtr(r), IP: middleware.ClientIP(r)}
	o, err := h.content.CreateOrder(r.Context(), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Order")
		return
	}
	WriteJSON(w, http.StatusCreated, o)
}

// ListOrders handles GET /api/orders. Orders carry customer contact
// details, so listing requires a session.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	list, err := h.content.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Order")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, list)
}

// GetOrder handles GET /api/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	o, err := h.content.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Order")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, o)
}

// UpdateOrderRequest is the body of PATCH /api/orders/{id}.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// UpdateOrder handles PATCH /api/orders/{id}. Only the status can change.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := h.content.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status, actor)
	if err != nil {
		writeServiceError(w, r, err, "Order")
		return
	}
	WriteJSON(w, http.StatusOK, o)
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteOrder(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeServiceError(w, r, err, "Order")
		return
	}
	writeDeleted(w)
}

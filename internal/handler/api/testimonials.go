// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kedjora/kedjora-go/internal/service"
)

// ListTestimonials handles GET /api/testimonials. ?featured=true keeps featured ones only.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.ListTestimonials(r.Context(), queryFlag(r, "featured"))
	if err != nil {
		writeServiceError(w, r, err, "Testimonial")
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetTestimonial handles GET /api/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	t, err := h.content.GetTestimonial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Testimonial")
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// CreateTestimonial handles POST /api/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.content.CreateTestimonial(r.Context(), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Testimonial")
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

// UpdateTestimonial handles PATCH /api/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	var in service.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.content.UpdateTestimonial(r.Context(), chi.URLParam(r, "id"), in, actor)
	if err != nil {
		writeServiceError(w, r, err, "Testimonial")
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// DeleteTestimonial handles DELETE /api/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.content.DeleteTestimonial(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		writeServiceError(w, r, err, "Testimonial")
		return
	}
	writeDeleted(w)
}

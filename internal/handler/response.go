// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// requireEntity fetches an entity for a page. A missing entity renders the
// not found page and other failures a 500. The bool reports success.
func requireEntity[T any](w http.ResponseWriter, r *http.Request, renderer *render.Renderer, entityName string, fetch func() (T, error)) (T, bool) {
	entity, err := fetch()
	if err == nil {
		return entity, true
	}
	var zero T
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(w, r, renderer)
		return zero, false
	}
	logAndInternalError(w, "failed to get "+entityName, "error", err, "path", r.URL.Path)
	return zero, false
}

// renderNotFound renders the public 404 page.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	td := render.TemplateData{Title: "Page not found"}
	if err := renderer.RenderStatus(w, r, http.StatusNotFound, "public/not_found", td); err != nil {
		http.NotFound(w, r)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
	"github.com/kedjora/kedjora-go/internal/shell"
)

// EventsPerPage is the number of events to display per page.
const EventsPerPage = 25

// detailsLengthThreshold is the max chars before details are collapsible
const detailsLengthThreshold = 80

// EventsHandler handles the audit log page.
type EventsHandler struct {
	events   *service.EventService
	renderer *render.Renderer
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *service.EventService, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{events: events, renderer: renderer}
}

// EventRow is an event prepared for display.
type EventRow struct {
	model.Event
	Details     string
	DetailsLong bool
}

// EventsListData holds data for the events list template.
type EventsListData struct {
	Events     []EventRow
	Total      int64
	Category   string
	Categories []string
	Pagination Pagination
}

// formatMetadata renders metadata as "key: value" pairs sorted by key.
func formatMetadata(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		var strValue string
		switch v := data[key].(type) {
		case string:
			strValue = v
		case float64:
			strValue = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			strValue = strconv.FormatBool(v)
		default:
			if b, err := json.Marshal(v); err == nil {
				strValue = string(b)
			}
		}
		parts = append(parts, key+": "+strValue)
	}
	return strings.Join(parts, ", ")
}

// List handles GET /admin/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !slices.Contains(model.EventCategories, category) {
		category = ""
	}

	page, err := h.events.ListEvents(r.Context(), category, pageParam(r), EventsPerPage)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	rows := make([]EventRow, 0, len(page.Events))
	for _, e := range page.Events {
		details := formatMetadata(e.Metadata)
		rows = append(rows, EventRow{Event: e, Details: details, DetailsLong: len(details) > detailsLengthThreshold})
	}

	h.renderer.RenderPage(w, r, "admin/events", shell.Page(r, "Event log", EventsListData{
		Events:     rows,
		Total:      page.Total,
		Category:   category,
		Categories: model.EventCategories,
		Pagination: BuildPagination(page.Page, page.Total, EventsPerPage, redirectAdmin+RouteEvents, r.URL.Query()),
	}))
}

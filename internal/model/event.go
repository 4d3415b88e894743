// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the domain constants and the JSON representations
// of stored content.
package model

import (
	"encoding/json"
	"time"

	"github.com/kedjora/kedjora-go/internal/store"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth     = "auth"
	EventCategoryContent  = "content"
	EventCategoryOrder    = "order"
	EventCategoryConfig   = "config"
	EventCategorySystem   = "system"
	EventCategoryCache    = "cache"
	EventCategorySecurity = "security"
)

// EventCategories lists every category in display order.
var EventCategories = []string{
	EventCategoryAuth,
	EventCategoryContent,
	EventCategoryOrder,
	EventCategoryConfig,
	EventCategorySystem,
	EventCategoryCache,
	EventCategorySecurity,
}

// Event is the JSON and template view of an audit log entry.
type Event struct {
	ID        int64          `json:"id"`
	Level     string         `json:"level"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	UserID    *string        `json:"userId,omitempty"`
	IPAddress string         `json:"ipAddress,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// EventFromStore converts a stored event. Undecodable metadata is dropped.
func EventFromStore(e store.Event) Event {
	out := Event{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		IPAddress: e.IpAddress,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		id := e.UserID.String
		out.UserID = &id
	}
	if e.Metadata != "" && e.Metadata != "{}" {
		var md map[string]any
		if json.Unmarshal([]byte(e.Metadata), &md) == nil {
			out.Metadata = md
		}
	}
	return out
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/store"
)

func TestDecodeList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DecodeList(`["a","b"]`))
	assert.Equal(t, []string{}, DecodeList(""))
	assert.Equal(t, []string{}, DecodeList("null"))
	assert.Equal(t, []string{}, DecodeList("not json"))
}

func TestEncodeList(t *testing.T) {
	assert.Equal(t, `[]`, EncodeList(nil))
	assert.Equal(t, `["Go","SQLite"]`, EncodeList([]string{"Go", "SQLite"}))
}

func TestServiceFromStoreJSON(t *testing.T) {
	s := ServiceFromStore(store.Service{
		ID:       "s1",
		Title:    "Web",
		Slug:     "web",
		Features: `["Responsive"]`,
		Price:    sql.NullString{String: "$500", Valid: true},
		IsActive: false,
	})

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "$500", got["price"])
	assert.Nil(t, got["imageUrl"])
	assert.Equal(t, false, got["isActive"])
	assert.Equal(t, []any{"Responsive"}, got["features"])
}

func TestOrderWithServiceFromStore(t *testing.T) {
	o := OrderWithServiceFromStore(store.OrderWithService{
		Order:        store.Order{ID: "o1", ServiceID: "s1", Status: store.OrderStatusPending},
		ServiceTitle: "Web",
	})
	require.NotNil(t, o.Service)
	assert.Equal(t, "s1", o.Service.ID)
	assert.Equal(t, "Web", o.Service.Title)
	assert.Nil(t, o.Phone)
}

func TestListConvertersNeverNil(t *testing.T) {
	assert.NotNil(t, ServicesFromStore(nil))
	assert.NotNil(t, PortfoliosFromStore(nil))
	assert.NotNil(t, TestimonialsFromStore(nil))
	assert.NotNil(t, OrdersFromStore(nil))
	assert.NotNil(t, PageContentsFromStore(nil))
}

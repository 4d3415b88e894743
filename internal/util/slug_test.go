// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Website Development", "website-development"},
		{"with special characters", "UI/UX Design!", "uiux-design"},
		{"with numbers", "Plan 123", "plan-123"},
		{"with accents", "Café résumé", "cafe-resume"},
		{"with multiple spaces", "Mobile   App", "mobile-app"},
		{"with hyphens", "Mobile - App", "mobile-app"},
		{"with leading/trailing spaces", "  Hello World  ", "hello-world"},
		{"all special characters", "!@#$%^&*()", ""},
		{"german umlauts", "Über München", "uber-munchen"},
		{"cyrillic", "Привет мир", "privet-mir"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyNonLatinProducesValidSlug(t *testing.T) {
	got := Slugify("日本語タイトル")
	if got == "" || !IsValidSlug(got) {
		t.Errorf("Slugify(CJK) = %q, want a non-empty valid slug", got)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("word ", 60))
	if len(got) > MaxSlugLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxSlugLength)
	}
	if !IsValidSlug(got) {
		t.Errorf("truncated slug %q is not valid", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"website-development", true},
		{"plan-2", true},
		{"a", true},
		{"", false},
		{"Website", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"with space", false},
		{"under_score", false},
		{strings.Repeat("a", MaxSlugLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.valid {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.valid)
			}
		})
	}
}

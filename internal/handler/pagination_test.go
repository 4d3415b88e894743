// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestBuildPaginationTotals(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalItems int64
		perPage    int
		wantPages  int
		wantPage   int
	}{
		{"zero items", 1, 0, 10, 1, 1},
		{"exactly one page", 1, 10, 10, 1, 1},
		{"one item over", 2, 11, 10, 2, 2},
		{"page too high", 9, 25, 10, 3, 3},
		{"zero per page", 1, 3, 0, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.page, tt.totalItems, tt.perPage, "/admin/events", nil)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tt.wantPage)
			}
		})
	}
}

func TestBuildPaginationLinks(t *testing.T) {
	p := BuildPagination(10, 200, 10, "/admin/events", url.Values{"category": {"auth"}, "page": {"10"}})

	if p.QueryString != "category=auth" {
		t.Fatalf("QueryString = %q", p.QueryString)
	}

	var numbers []int
	ellipses := 0
	for _, pg := range p.Pages {
		if pg.IsEllipsis {
			ellipses++
			continue
		}
		numbers = append(numbers, pg.Number)
	}
	want := []int{1, 8, 9, 10, 11, 12, 20}
	if len(numbers) != len(want) {
		t.Fatalf("pages = %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Fatalf("pages = %v, want %v", numbers, want)
		}
	}
	if ellipses != 2 {
		t.Errorf("ellipses = %d, want 2", ellipses)
	}
	if got := p.NextURL(); got != "/admin/events?category=auth&page=11" {
		t.Errorf("NextURL() = %q", got)
	}
	if !p.HasPrev() || !p.HasNext() || !p.ShouldShow() {
		t.Error("expected prev, next and visible pagination")
	}
}

func TestBuildPaginationFirstPages(t *testing.T) {
	p := BuildPagination(1, 30, 10, "/x", nil)
	if len(p.Pages) != 3 {
		t.Fatalf("len(Pages) = %d, want 3", len(p.Pages))
	}
	if !p.Pages[0].IsCurrent || p.HasPrev() {
		t.Error("first page should be current without prev")
	}
	if p.PageURL(2) != "/x?page=2" {
		t.Errorf("PageURL(2) = %q", p.PageURL(2))
	}
}

func TestPageParam(t *testing.T) {
	tests := map[string]int{"": 1, "?page=3": 3, "?page=0": 1, "?page=abc": 1, "?page=-2": 1}
	for q, want := range tests {
		r := httptest.NewRequest("GET", "/admin/events"+q, nil)
		if got := pageParam(r); got != want {
			t.Errorf("pageParam(%q) = %d, want %d", q, got, want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// paginationWindow is the number of page links shown around the current page.
const paginationWindow = 5

// Pagination holds pagination data for admin templates.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	Pages       []PaginationPage
	BaseURL     string
	QueryString string
}

// PaginationPage is a single page link. Ellipsis entries carry no number.
type PaginationPage struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// pageParam reads ?page=, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// BuildPagination creates pagination data. queryParams are preserved in
// every link except for page itself.
func BuildPagination(currentPage int, totalItems int64, perPage int, baseURL string, queryParams url.Values) Pagination {
	if perPage <= 0 {
		perPage = 1
	}
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		BaseURL:     baseURL,
	}

	params := make(url.Values)
	for k, v := range queryParams {
		if k != "page" && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}
	p.QueryString = params.Encode()

	start := max(currentPage-paginationWindow/2, 1)
	end := min(start+paginationWindow-1, totalPages)
	start = max(end-paginationWindow+1, 1)

	if start > 1 {
		p.Pages = append(p.Pages, PaginationPage{Number: 1, URL: p.PageURL(1)})
		if start > 2 {
			p.Pages = append(p.Pages, PaginationPage{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, PaginationPage{Number: i, URL: p.PageURL(i), IsCurrent: i == currentPage})
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Pages = append(p.Pages, PaginationPage{IsEllipsis: true})
		}
		p.Pages = append(p.Pages, PaginationPage{Number: totalPages, URL: p.PageURL(totalPages)})
	}
	return p
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.TotalPages }

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string { return p.PageURL(p.CurrentPage - 1) }

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string { return p.PageURL(p.CurrentPage + 1) }

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and the XML sitemap of the public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry is a content item with a public detail page.
type Entry struct {
	Slug      string
	UpdatedAt time.Time
}

// staticPages are the fixed public pages after the home page.
var staticPages = []struct {
	path     string
	freq     ChangeFreq
	priority string
}{
	{"/services", ChangeFreqWeekly, "0.9"},
	{"/portfolio", ChangeFreqWeekly, "0.8"},
	{"/blog", ChangeFreqDaily, "0.8"},
	{"/testimonials", ChangeFreqMonthly, "0.5"},
	{"/about", ChangeFreqMonthly, "0.6"},
	{"/contact", ChangeFreqMonthly, "0.7"},
}

// SitemapBuilder builds sitemap XML for the public pages.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder with the home page and the fixed
// section pages already added.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	b := &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
	for _, p := range staticPages {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + p.path,
			ChangeFreq: p.freq,
			Priority:   p.priority,
		})
	}
	return b
}

// Add appends one detail page per entry under prefix, e.g. "/services".
func (b *SitemapBuilder) Add(prefix string, entries []Entry) {
	for _, e := range entries {
		u := SitemapURL{
			Loc:        b.siteURL + prefix + "/" + e.Slug,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.7",
		}
		if !e.UpdatedAt.IsZero() {
			u.LastMod = e.UpdatedAt.UTC().Format(time.RFC3339)
		}
		b.urls = append(b.urls, u)
	}
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	xmlBytes, err := xml.MarshalIndent(Sitemap{XMLNS: XMLNamespace, URLs: b.urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}

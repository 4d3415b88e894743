// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content sanitizes user-supplied text and renders Markdown bodies
// into safe HTML.
package content

import (
	"bytes"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	// ugcPolicy allows the safe subset of HTML used in descriptions and
	// testimonials while stripping scripts, event handlers and styles.
	ugcPolicy = bluemonday.UGCPolicy()

	// strictPolicy strips every tag.
	strictPolicy = bluemonday.StrictPolicy()

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
)

// CleanText strips all markup from a single-line field such as a title or
// a name. The result is plain text; templates escape it on output.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeHTML returns s with only user-content-safe HTML kept.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}

// HTML marks an already sanitized value as safe for templates.
func HTML(s string) template.HTML {
	return template.HTML(ugcPolicy.Sanitize(s)) //nolint:gosec // sanitized above
}

// RenderMarkdown converts Markdown to HTML and sanitizes the result. Raw
// HTML inside the source is dropped by the renderer.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized
}

// Excerpt returns the plain text of s cut to at most n runes on a word
// boundary, with an ellipsis when shortened.
func Excerpt(s string, n int) string {
	text := strings.Join(strings.Fields(CleanText(s)), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

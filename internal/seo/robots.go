// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// privatePaths are never crawled: the admin area, the auth pages and the
// legacy login alias.
var privatePaths = []string{"/admin", "/auth", "/login", "/api"}

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL     string // Base URL for the sitemap reference
	DisallowAll bool   // Block all crawlers, e.g. outside production
}

// Robots builds the robots.txt body.
func Robots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, p := range privatePaths {
		sb.WriteString("Disallow: ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(cfg.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}
	return sb.String()
}

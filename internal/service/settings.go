// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kedjora/kedjora-go/internal/content"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/util"
)

// Page sections edited from the admin settings page.
const (
	SectionHome    = "home"
	SectionAbout   = "about"
	SectionContact = "contact"
)

// EditableSections lists the sections shown on the settings page, in order.
var EditableSections = []string{SectionHome, SectionAbout, SectionContact}

// PageContentInput is the body of a page settings upsert. content is
// Markdown and is rendered at view time.
type PageContentInput struct {
	Section    string  `json:"section"`
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	ButtonText *string `json:"buttonText"`
	ButtonLink *string `json:"buttonLink"`
}

func cleanPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := content.CleanText(*p)
	return &v
}

// ListSettings returns page sections ordered by section key, optionally
// only the one named section.
func (s *ContentService) ListSettings(ctx context.Context, section string) ([]model.PageContent, error) {
	if section != "" {
		row, err := s.queries.GetPageContentBySection(ctx, section)
		if errors.Is(err, store.ErrNotFound) {
			return []model.PageContent{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("getting section: %w", err)
		}
		return []model.PageContent{model.PageContentFromStore(row)}, nil
	}

	rows, err := s.queries.ListPageContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	return model.PageContentsFromStore(rows), nil
}

// SettingsBySection returns the editable sections keyed by name. Missing
// sections are absent from the map.
func (s *ContentService) SettingsBySection(ctx context.Context) (map[string]model.PageContent, error) {
	all, err := s.ListSettings(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.PageContent, len(all))
	for _, p := range all {
		out[p.Section] = p
	}
	return out, nil
}

// UpsertSetting creates or replaces a page section keyed by section.
func (s *ContentService) UpsertSetting(ctx context.Context, in PageContentInput, actor Actor) (model.PageContent, error) {
	in.Section = strings.TrimSpace(in.Section)
	if in.Section == "" {
		return model.PageContent{}, invalid(MsgSectionNeeded)
	}
	if !util.IsValidSlug(in.Section) {
		return model.PageContent{}, invalid(MsgInvalidKey)
	}

	row, err := s.queries.UpsertPageContent(ctx, store.UpsertPageContentParams{
		Section:    in.Section,
		Title:      util.NullStringFromPtr(cleanPtr(in.Title)),
		Subtitle:   util.NullStringFromPtr(cleanPtr(in.Subtitle)),
		Content:    util.NullStringFromPtr(in.Content),
		ImageUrl:   util.NullStringFromPtr(in.ImageURL),
		ButtonText: util.NullStringFromPtr(cleanPtr(in.ButtonText)),
		ButtonLink: util.NullStringFromPtr(in.ButtonLink),
		Now:        s.now(),
	})
	if err != nil {
		return model.PageContent{}, fmt.Errorf("saving section: %w", err)
	}

	s.cache.InvalidateContent(ctx)
	if s.events != nil {
		_ = s.events.LogConfigEvent(ctx, "Page settings saved", actor.UserID, actor.IP, map[string]any{"section": in.Section})
	}
	return model.PageContentFromStore(row), nil
}

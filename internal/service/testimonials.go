// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/kedjora/kedjora-go/internal/content"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/util"
)

// TestimonialInput is the body of a testimonial create or update request.
type TestimonialInput struct {
	Name     string  `json:"name"`
	Position *string `json:"position"`
	Company  *string `json:"company"`
	Content  string  `json:"content"`
	Rating   int64   `json:"rating"`
	ImageURL *string `json:"imageUrl"`
	Featured *bool   `json:"featured"`
}

func (in *TestimonialInput) validate() error {
	in.Name = content.CleanText(in.Name)
	in.Content = content.SanitizeHTML(in.Content)
	if in.Position != nil {
		v := content.CleanText(*in.Position)
		in.Position = &v
	}
	if in.Company != nil {
		v := content.CleanText(*in.Company)
		in.Company = &v
	}

	if in.Name == "" || in.Content == "" || in.Rating == 0 {
		return invalid(MsgMissingFields)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return invalid(MsgInvalidRating)
	}
	return nil
}

// ListTestimonials returns testimonials featured first then newest, or only
// the featured ones newest first.
func (s *ContentService) ListTestimonials(ctx context.Context, featuredOnly bool) ([]model.Testimonial, error) {
	var (
		rows []store.Testimonial
		err  error
	)
	if featuredOnly {
		rows, err = s.queries.ListFeaturedTestimonials(ctx, -1)
	} else {
		rows, err = s.queries.ListTestimonials(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	return model.TestimonialsFromStore(rows), nil
}

// GetTestimonial returns one testimonial by id.
func (s *ContentService) GetTestimonial(ctx context.Context, id string) (model.Testimonial, error) {
	row, err := s.queries.GetTestimonialByID(ctx, id)
	if err != nil {
		return model.Testimonial{}, notFound(err, "getting testimonial")
	}
	return model.TestimonialFromStore(row), nil
}

// CreateTestimonial validates and stores a testimonial. featured defaults to false.
func (s *ContentService) CreateTestimonial(ctx context.Context, in TestimonialInput, actor Actor) (model.Testimonial, error) {
	if err := in.validate(); err != nil {
		return model.Testimonial{}, err
	}

	now := s.now()
	row, err := s.queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		Name:      in.Name,
		Position:  util.NullStringFromPtr(in.Position),
		Company:   util.NullStringFromPtr(in.Company),
		Content:   in.Content,
		Rating:    in.Rating,
		ImageUrl:  util.NullStringFromPtr(in.ImageURL),
		Featured:  util.BoolOr(in.Featured, false),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
	}

	s.afterMutation(ctx, actor, "Testimonial created", map[string]any{"testimonial_id": row.ID})
	return model.TestimonialFromStore(row), nil
}

// UpdateTestimonial replaces a testimonial. Absent optional fields keep
// their stored value.
func (s *ContentService) UpdateTestimonial(ctx context.Context, id string, in TestimonialInput, actor Actor) (model.Testimonial, error) {
	current, err := s.queries.GetTestimonialByID(ctx, id)
	if err != nil {
		return model.Testimonial{}, notFound(err, "getting testimonial")
	}
	if err := in.validate(); err != nil {
		return model.Testimonial{}, err
	}

	row, err := s.queries.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
		Name:      in.Name,
		Position:  optional(in.Position, current.Position),
		Company:   optional(in.Company, current.Company),
		Content:   in.Content,
		Rating:    in.Rating,
		ImageUrl:  optional(in.ImageURL, current.ImageUrl),
		Featured:  util.BoolOr(in.Featured, current.Featured),
		UpdatedAt: s.now(),
		ID:        id,
	})
	if err != nil {
		return model.Testimonial{}, notFound(err, "updating testimonial")
	}

	s.afterMutation(ctx, actor, "Testimonial updated", map[string]any{"testimonial_id": id})
	return model.TestimonialFromStore(row), nil
}

// DeleteTestimonial removes a testimonial.
func (s *ContentService) DeleteTestimonial(ctx context.Context, id string, actor Actor) error {
	n, err := s.queries.DeleteTestimonial(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting testimonial: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.afterMutation(ctx, actor, "Testimonial deleted", map[string]any{"testimonial_id": id})
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/kedjora/kedjora-go/internal/store"
)

// Service is the API representation of a service offering.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Price       *string   `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
	IsPopular   bool      `json:"isPopular"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Portfolio is the API representation of a portfolio item.
type Portfolio struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ClientName   *string   `json:"clientName"`
	ServiceType  string    `json:"serviceType"`
	ImageURLs    []string  `json:"imageUrls"`
	Technologies []string  `json:"technologies"`
	DemoURL      *string   `json:"demoUrl"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Testimonial is the API representation of a client testimonial.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position"`
	Company   *string   `json:"company"`
	Content   string    `json:"content"`
	Rating    int64     `json:"rating"`
	ImageURL  *string   `json:"imageUrl"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderService is the service summary embedded in an order.
type OrderService struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Order is the API representation of a customer order.
type Order struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     *string       `json:"phone"`
	ServiceID string        `json:"serviceId"`
	Service   *OrderService `json:"service,omitempty"`
	Message   string        `json:"message"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PageContent is the API representation of an editable page section.
type PageContent struct {
	ID         string    `json:"id"`
	Section    string    `json:"section"`
	Title      *string   `json:"title"`
	Subtitle   *string   `json:"subtitle"`
	Content    *string   `json:"content"`
	ImageURL   *string   `json:"imageUrl"`
	ButtonText *string   `json:"buttonText"`
	ButtonLink *string   `json:"buttonLink"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DecodeList decodes a JSON array column. Malformed or empty values yield
// an empty, non-nil slice so the API always emits an array.
func DecodeList(raw string) []string {
	var out []string
	if raw == "" || json.Unmarshal([]byte(raw), &out) != nil || out == nil {
		return []string{}
	}
	return out
}

// EncodeList encodes a string slice for storage in a JSON array column.
func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ServiceFromStore(s store.Service) Service {
	return Service{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Features:    DecodeList(s.Features),
		Price:       ptr(s.Price),
		ImageURL:    ptr(s.ImageUrl),
		IsPopular:   s.IsPopular,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ServicesFromStore(in []store.Service) []Service {
	out := make([]Service, 0, len(in))
	for _, s := range in {
		out = append(out, ServiceFromStore(s))
	}
	return out
}

func PortfolioFromStore(p store.Portfolio) Portfolio {
	return Portfolio{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		ClientName:   ptr(p.ClientName),
		ServiceType:  p.ServiceType,
		ImageURLs:    DecodeList(p.ImageUrls),
		Technologies: DecodeList(p.Technologies),
		DemoURL:      ptr(p.DemoUrl),
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func PortfoliosFromStore(in []store.Portfolio) []Portfolio {
	out := make([]Portfolio, 0, len(in))
	for _, p := range in {
		out = append(out, PortfolioFromStore(p))
	}
	return out
}

func TestimonialFromStore(t store.Testimonial) Testimonial {
	return Testimonial{
		ID:        t.ID,
		Name:      t.Name,
		Position:  ptr(t.Position),
		Company:   ptr(t.Company),
		Content:   t.Content,
		Rating:    t.Rating,
		ImageURL:  ptr(t.ImageUrl),
		Featured:  t.Featured,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TestimonialsFromStore(in []store.Testimonial) []Testimonial {
	out := make([]Testimonial, 0, len(in))
	for _, t := range in {
		out = append(out, TestimonialFromStore(t))
	}
	return out
}

// OrderFromStore converts an order without its service summary.
func OrderFromStore(o store.Order) Order {
	return Order{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     ptr(o.Phone),
		ServiceID: o.ServiceID,
		Message:   o.Message,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OrderWithServiceFromStore converts a joined order row.
func OrderWithServiceFromStore(o store.OrderWithService) Order {
	out := OrderFromStore(o.Order)
	out.Service = &OrderService{ID: o.ServiceID, Title: o.ServiceTitle}
	return out
}

func OrdersFromStore(in []store.OrderWithService) []Order {
	out := make([]Order, 0, len(in))
	for _, o := range in {
		out = append(out, OrderWithServiceFromStore(o))
	}
	return out
}

func PageContentFromStore(p store.PageContent) PageContent {
	return PageContent{
		ID:         p.ID,
		Section:    p.Section,
		Title:      ptr(p.Title),
		Subtitle:   ptr(p.Subtitle),
		Content:    ptr(p.Content),
		ImageURL:   ptr(p.ImageUrl),
		ButtonText: ptr(p.ButtonText),
		ButtonLink: ptr(p.ButtonLink),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func PageContentsFromStore(in []store.PageContent) []PageContent {
	out := make([]PageContent, 0, len(in))
	for _, p := range in {
		out = append(out, PageContentFromStore(p))
	}
	return out
}

// BlogPost is the view representation of a published blog post.
type BlogPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func BlogPostFromStore(b store.BlogPost) BlogPost {
	return BlogPost{
		ID:         b.ID,
		Title:      b.Title,
		Slug:       b.Slug,
		Excerpt:    b.Excerpt,
		Content:    b.Content,
		CoverImage: ptr(b.CoverImage),
		Published:  b.Published,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func BlogPostsFromStore(in []store.BlogPost) []BlogPost {
	out := make([]BlogPost, 0, len(in))
	for _, b := range in {
		out = append(out, BlogPostFromStore(b))
	}
	return out
}

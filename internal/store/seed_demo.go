// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// SeedDemo fills an empty database with sample agency content. Each table
// is skipped when it already holds rows, so calling it twice is harmless.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	slog.Info("seeding demo content")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)

	serviceIDs, err := seedDemoServices(ctx, queries)
	if err != nil {
		return fmt.Errorf("seeding demo services: %w", err)
	}
	if err := seedDemoPortfolios(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo portfolio: %w", err)
	}
	if err := seedDemoTestimonials(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo testimonials: %w", err)
	}
	if err := seedDemoPageContents(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo page content: %w", err)
	}
	if err := seedDemoBlogPosts(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo blog posts: %w", err)
	}
	if err := seedDemoOrders(ctx, queries, serviceIDs); err != nil {
		return fmt.Errorf("seeding demo orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing demo content: %w", err)
	}

	slog.Info("demo content seeded successfully")
	return nil
}

func seedDemoServices(ctx context.Context, queries *Queries) (map[string]string, error) {
	count, err := queries.CountServices(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		slog.Info("services already exist, skipping demo services")
		return map[string]string{}, nil
	}

	now := time.Now()
	services := []struct {
		Title       string
		Slug        string
		Description string
		Features    string
		Price       string
		IsPopular   bool
		IsActive    bool
	}{
		{
			"Website Development", "website-development",
			"Company profiles, landing pages and online stores built to load fast and rank well.",
			`["Responsive design","SEO basics","Admin dashboard","3 months support"]`,
			"From Rp 2.500.000", true, true,
		},
		{
			"Mobile App Development", "mobile-app-development",
			"Android and iOS apps for small businesses and student projects.",
			`["Cross-platform","Push notifications","Play Store release"]`,
			"From Rp 5.000.000", false, true,
		},
		{
			"Academic Assistance", "academic-assistance",
			"Guidance for final projects, theses and programming assignments.",
			`["Code review","Documentation","Consultation sessions"]`,
			"", true, true,
		},
		{
			"UI/UX Design", "ui-ux-design",
			"Wireframes, prototypes and design systems ready for development.",
			`["User research","Figma prototypes","Design handoff"]`,
			"From Rp 1.500.000", false, false,
		},
	}

	ids := make(map[string]string, len(services))
	for _, s := range services {
		created, err := queries.CreateService(ctx, CreateServiceParams{
			Title:       s.Title,
			Slug:        s.Slug,
			Description: s.Description,
			Features:    s.Features,
			Price:       sql.NullString{String: s.Price, Valid: s.Price != ""},
			IsPopular:   s.IsPopular,
			IsActive:    s.IsActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("creating service %s: %w", s.Slug, err)
		}
		ids[s.Slug] = created.ID
	}

	slog.Info("seeded demo services", "count", len(services))
	return ids, nil
}

func seedDemoPortfolios(ctx context.Context, queries *Queries) error {
	count, err := queries.CountPortfolios(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("portfolio already exists, skipping demo portfolio")
		return nil
	}

	now := time.Now()
	items := []CreatePortfolioParams{
		{
			Title:        "Coffee Shop Ordering",
			Slug:         "coffee-shop-ordering",
			Description:  "Online menu and ordering flow for a local coffee shop.",
			ClientName:   sql.NullString{String: "Kopi Senja", Valid: true},
			ServiceType:  "website-development",
			ImageUrls:    `["/static/img/portfolio/coffee.jpg"]`,
			Technologies: `["Go","SQLite","HTMX"]`,
			Featured:     true,
		},
		{
			Title:        "Campus Event App",
			Slug:         "campus-event-app",
			Description:  "Mobile app for browsing and registering to campus events.",
			ServiceType:  "mobile-app-development",
			ImageUrls:    `["/static/img/portfolio/campus.jpg"]`,
			Technologies: `["Flutter","Firebase"]`,
			Featured:     true,
		},
		{
			Title:        "Clinic Queue System",
			Slug:         "clinic-queue-system",
			Description:  "Queue display and booking system for a neighbourhood clinic.",
			ClientName:   sql.NullString{String: "Klinik Sehat", Valid: true},
			ServiceType:  "website-development",
			ImageUrls:    `["/static/img/portfolio/clinic.jpg"]`,
			Technologies: `["Go","PostgreSQL"]`,
			DemoUrl:      sql.NullString{String: "https://example.com/clinic", Valid: true},
		},
	}

	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
		if _, err := queries.CreatePortfolio(ctx, item); err != nil {
			return fmt.Errorf("creating portfolio %s: %w", item.Slug, err)
		}
	}

	slog.Info("seeded demo portfolio", "count", len(items))
	return nil
}

func seedDemoTestimonials(ctx context.Context, queries *Queries) error {
	count, err := queries.CountTestimonials(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("testimonials already exist, skipping demo testimonials")
		return nil
	}

	now := time.Now()
	items := []CreateTestimonialParams{
		{
			Name:     "Rina Putri",
			Position: sql.NullString{String: "Owner", Valid: true},
			Company:  sql.NullString{String: "Kopi Senja", Valid: true},
			Content:  "Orders doubled in the first month after the new site went live.",
			Rating:   5,
			Featured: true,
		},
		{
			Name:    "Bagus Pratama",
			Content: "Clear explanations and quick replies during my thesis project.",
			Rating:  4,
		},
	}

	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
		if _, err := queries.CreateTestimonial(ctx, item); err != nil {
			return fmt.Errorf("creating testimonial %s: %w", item.Name, err)
		}
	}

	slog.Info("seeded demo testimonials", "count", len(items))
	return nil
}

func seedDemoPageContents(ctx context.Context, queries *Queries) error {
	existing, err := queries.ListPageContents(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("page content already exists, skipping demo page content")
		return nil
	}

	text := func(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }
	now := time.Now()
	sections := []UpsertPageContentParams{
		{
			Section:    "home",
			Title:      text("Digital solutions for growing businesses"),
			Subtitle:   text("Websites, apps and academic support from one team."),
			ButtonText: text("Start a project"),
			ButtonLink: text("/contact"),
		},
		{
			Section:  "about",
			Title:    text("About Kedjora"),
			Subtitle: text("A small studio that ships."),
			Content:  text("We are a team of developers and designers helping local businesses and students.\n\n- Honest pricing\n- Fast delivery\n- Long-term support"),
		},
		{
			Section:  "contact",
			Title:    text("Get in touch"),
			Subtitle: text("Tell us about your project and we will reply within one business day."),
			Content:  text("hello@kedjora.example"),
		},
	}

	for _, s := range sections {
		s.Now = now
		if _, err := queries.UpsertPageContent(ctx, s); err != nil {
			return fmt.Errorf("creating page content %s: %w", s.Section, err)
		}
	}

	slog.Info("seeded demo page content", "count", len(sections))
	return nil
}

func seedDemoBlogPosts(ctx context.Context, queries *Queries) error {
	posts, err := queries.ListPublishedBlogPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) > 0 {
		slog.Info("blog posts already exist, skipping demo blog posts")
		return nil
	}

	now := time.Now()
	items := []CreateBlogPostParams{
		{
			Title:     "Choosing a stack for your first business website",
			Slug:      "choosing-a-stack",
			Excerpt:   "What actually matters when you pick the technology behind a company profile.",
			Content:   "## Start with the content\n\nMost small sites need **fast pages** and an easy way to edit text.\n\n1. Pick a host\n2. Pick a CMS\n3. Ship",
			Published: true,
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			Title:     "Five tips for a smoother thesis defense",
			Slug:      "thesis-defense-tips",
			Excerpt:   "Practical advice from dozens of supervised final projects.",
			Content:   "Prepare a short demo, rehearse the questions, and keep your slides simple.",
			Published: true,
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			Title:     "Draft: pricing update",
			Slug:      "pricing-update",
			Excerpt:   "Not published yet.",
			Content:   "TBD",
			CreatedAt: now,
		},
	}

	for _, item := range items {
		item.UpdatedAt = item.CreatedAt
		if _, err := queries.CreateBlogPost(ctx, item); err != nil {
			return fmt.Errorf("creating blog post %s: %w", item.Slug, err)
		}
	}

	slog.Info("seeded demo blog posts", "count", len(items))
	return nil
}

func seedDemoOrders(ctx context.Context, queries *Queries, serviceIDs map[string]string) error {
	serviceID, ok := serviceIDs["website-development"]
	if !ok {
		return nil
	}

	now := time.Now()
	_, err := queries.CreateOrder(ctx, CreateOrderParams{
		Name:      "Dewi Lestari",
		Email:     "dewi@example.com",
		Phone:     sql.NullString{String: "+62 812 0000 0000", Valid: true},
		ServiceID: serviceID,
		Message:   "I need a company profile site for my bakery.",
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating demo order: %w", err)
	}
	return nil
}

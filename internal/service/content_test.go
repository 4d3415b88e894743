// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/cache"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/testutil"
)

func newContentService(t *testing.T) (*ContentService, *sql.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	return NewContentService(db, nil, NewEventService(db)), db
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func admin() Actor            { return Actor{UserID: strPtr("admin-1"), IP: "127.0.0.1"} }
func validationMsg(err error) string {
	msg, _ := IsValidation(err)
	return msg
}

func serviceInput(slug string) ServiceInput {
	return ServiceInput{
		Title:       "Web Development",
		Slug:        slug,
		Description: "Sites and apps",
		Features:    model.StringList{"Responsive", "SEO"},
	}
}

func TestCreateServiceDefaults(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	got, err := svc.CreateService(ctx, serviceInput("web"), admin())
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsPopular)
	assert.Equal(t, []string{"Responsive", "SEO"}, got.Features)
}

func TestCreateServiceHonorsExplicitFalse(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	in := serviceInput("hidden")
	in.IsActive = boolPtr(false)
	in.IsPopular = boolPtr(true)

	got, err := svc.CreateService(ctx, in, admin())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.True(t, got.IsPopular)

	stored, err := svc.GetService(ctx, got.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestCreateServiceValidation(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   func() ServiceInput
		msg  string
	}{
		{"missing title", func() ServiceInput { in := serviceInput("a"); in.Title = " "; return in }, MsgMissingFields},
		{"missing slug", func() ServiceInput { return serviceInput("") }, MsgMissingFields},
		{"no features", func() ServiceInput { in := serviceInput("a"); in.Features = model.StringList{" "}; return in }, MsgMissingFields},
		{"bad slug", func() ServiceInput { return serviceInput("Not A Slug") }, MsgInvalidSlug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateService(ctx, tt.in(), admin())
			require.Error(t, err)
			assert.Equal(t, tt.msg, validationMsg(err))
		})
	}
}

func TestCreateServiceDuplicateSlug(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, serviceInput("dup"), admin())
	require.NoError(t, err)

	_, err = svc.CreateService(ctx, serviceInput("dup"), admin())
	require.Error(t, err)
	assert.Equal(t, MsgSlugTaken, validationMsg(err))
}

func TestCreateServiceStripsMarkup(t *testing.T) {
	svc, _ := newContentService(t)
	in := serviceInput("clean")
	in.Title = "<b>Bold</b> title"
	in.Description = `<p onclick="x()">Hello</p><script>alert(1)</script>`

	got, err := svc.CreateService(context.Background(), in, admin())
	require.NoError(t, err)
	assert.Equal(t, "Bold title", got.Title)
	assert.NotContains(t, got.Description, "script")
	assert.NotContains(t, got.Description, "onclick")
}

func TestUpdateServiceKeepsAbsentFields(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	in := serviceInput("keep")
	in.Price = strPtr("$100")
	in.IsPopular = boolPtr(true)
	created, err := svc.CreateService(ctx, in, admin())
	require.NoError(t, err)

	upd := serviceInput("")
	upd.Title = "Renamed"
	got, err := svc.UpdateService(ctx, created.ID, upd, admin())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "keep", got.Slug)
	require.NotNil(t, got.Price)
	assert.Equal(t, "$100", *got.Price)
	assert.True(t, got.IsPopular)
	assert.True(t, got.IsActive)

	upd.IsActive = boolPtr(false)
	upd.Price = strPtr("")
	got, err = svc.UpdateService(ctx, created.ID, upd, admin())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Nil(t, got.Price)
}

func TestUpdateServiceSlugConflict(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, serviceInput("one"), admin())
	require.NoError(t, err)
	two, err := svc.CreateService(ctx, serviceInput("two"), admin())
	require.NoError(t, err)

	_, err = svc.UpdateService(ctx, two.ID, serviceInput("one"), admin())
	assert.Equal(t, MsgSlugTaken, validationMsg(err))

	_, err = svc.UpdateService(ctx, "missing", serviceInput("x"), admin())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteService(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, serviceInput("gone"), admin())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(ctx, created.ID, admin()))
	_, err = svc.GetService(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteService(ctx, created.ID, admin()), ErrNotFound)
}

func TestDeleteServiceWithOrdersIsInUse(t *testing.T) {
	svc, db := newContentService(t)
	ctx := context.Background()
	s := testutil.CreateService(t, db, "Design", "design")

	_, err := svc.CreateOrder(ctx, OrderInput{Name: "Ann", Email: "ann@example.com", ServiceID: s.ID, Message: "Hi"}, Actor{IP: "10.0.0.1"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteService(ctx, s.ID, admin()), ErrInUse)
	_, err = svc.GetService(ctx, s.ID)
	assert.NoError(t, err)
}

func TestListServicesActiveOnly(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, serviceInput("on"), admin())
	require.NoError(t, err)
	off := serviceInput("off")
	off.IsActive = boolPtr(false)
	_, err = svc.CreateService(ctx, off, admin())
	require.NoError(t, err)

	all, err := svc.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "on", active[0].Slug)
}

func TestMutationsAreAudited(t *testing.T) {
	db := testutil.TestDB(t)
	events := NewEventService(db)
	svc := NewContentService(db, nil, events)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, serviceInput("audit"), admin())
	require.NoError(t, err)

	page, err := events.ListEvents(ctx, model.EventCategoryContent, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "Service created", page.Events[0].Message)
}

func TestMutationInvalidatesCatalog(t *testing.T) {
	db := testutil.TestDB(t)
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })
	cm := cache.NewManager(mem, time.Minute)

	svc := NewContentService(db, cm, nil)
	cat := NewCatalog(db, cm)
	ctx := context.Background()

	list, err := cat.ActiveServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.CreateService(ctx, serviceInput("fresh"), admin())
	require.NoError(t, err)

	list, err = cat.ActiveServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fresh", list[0].Slug)
}

func portfolioInput(slug string) PortfolioInput {
	return PortfolioInput{
		Title:        "Shop",
		Slug:         slug,
		Description:  "An online shop",
		ServiceType:  "web",
		ImageURLs:    model.StringList{"/img/a.png"},
		Technologies: model.StringList{"Go", "SQLite"},
	}
}

func TestPortfolioLifecycle(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolio(ctx, portfolioInput("shop"), admin())
	require.NoError(t, err)
	assert.False(t, created.Featured)
	assert.Equal(t, []string{"Go", "SQLite"}, created.Technologies)

	_, err = svc.CreatePortfolio(ctx, portfolioInput("shop"), admin())
	assert.Equal(t, MsgSlugTaken, validationMsg(err))

	in := portfolioInput("")
	in.Featured = boolPtr(true)
	in.ClientName = strPtr("Acme")
	updated, err := svc.UpdatePortfolio(ctx, created.ID, in, admin())
	require.NoError(t, err)
	assert.True(t, updated.Featured)
	assert.Equal(t, "shop", updated.Slug)
	require.NotNil(t, updated.ClientName)

	featured, err := svc.ListPortfolios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	require.NoError(t, svc.DeletePortfolio(ctx, created.ID, admin()))
	assert.ErrorIs(t, svc.DeletePortfolio(ctx, created.ID, admin()), ErrNotFound)
}

func TestPortfolioRequiresImagesAndTechnologies(t *testing.T) {
	svc, _ := newContentService(t)
	in := portfolioInput("x")
	in.ImageURLs = nil

	_, err := svc.CreatePortfolio(context.Background(), in, admin())
	assert.Equal(t, MsgMissingFields, validationMsg(err))
}

func TestTestimonialRating(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	base := TestimonialInput{Name: "Bo", Content: "Great work", Rating: 5}
	got, err := svc.CreateTestimonial(ctx, base, admin())
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Rating)

	bad := base
	bad.Rating = 6
	_, err = svc.CreateTestimonial(ctx, bad, admin())
	assert.Equal(t, MsgInvalidRating, validationMsg(err))

	bad.Rating = 0
	_, err = svc.CreateTestimonial(ctx, bad, admin())
	assert.Equal(t, MsgMissingFields, validationMsg(err))

	upd := base
	upd.Rating = 3
	upd.Featured = boolPtr(true)
	got, err = svc.UpdateTestimonial(ctx, got.ID, upd, admin())
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Rating)
	assert.True(t, got.Featured)

	require.NoError(t, svc.DeleteTestimonial(ctx, got.ID, admin()))
	_, err = svc.GetTestimonial(ctx, got.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertSetting(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	_, err := svc.UpsertSetting(ctx, PageContentInput{}, admin())
	assert.Equal(t, MsgSectionNeeded, validationMsg(err))

	_, err = svc.UpsertSetting(ctx, PageContentInput{Section: "Bad Key"}, admin())
	assert.Equal(t, MsgInvalidKey, validationMsg(err))

	first, err := svc.UpsertSetting(ctx, PageContentInput{Section: "about", Title: strPtr("About us")}, admin())
	require.NoError(t, err)

	second, err := svc.UpsertSetting(ctx, PageContentInput{Section: "about", Title: strPtr("<i>Who</i> we are")}, admin())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Title)
	assert.Equal(t, "Who we are", *second.Title)

	list, err := svc.ListSettings(ctx, "about")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	none, err := svc.ListSettings(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogServiceBySlugHidesInactive(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, nil, nil)
	cat := NewCatalog(db, nil)
	ctx := context.Background()

	in := serviceInput("secret")
	in.IsActive = boolPtr(false)
	_, err := svc.CreateService(ctx, in, admin())
	require.NoError(t, err)

	_, err = cat.ServiceBySlug(ctx, "secret")
	assert.ErrorIs(t, err, ErrNotFound)

	sec, err := cat.Section(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "home", sec.Section)
	assert.Nil(t, sec.Title)
}

func TestCatalogRelatedPortfolios(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, nil, nil)
	cat := NewCatalog(db, nil)
	ctx := context.Background()

	a, err := svc.CreatePortfolio(ctx, portfolioInput("a"), admin())
	require.NoError(t, err)
	_, err = svc.CreatePortfolio(ctx, portfolioInput("b"), admin())
	require.NoError(t, err)
	other := portfolioInput("c")
	other.ServiceType = "mobile"
	_, err = svc.CreatePortfolio(ctx, other, admin())
	require.NoError(t, err)

	related, err := cat.RelatedPortfolios(ctx, a)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "b", related[0].Slug)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kedjora/kedjora-go/internal/auth"
	"github.com/kedjora/kedjora-go/internal/cache"
	"github.com/kedjora/kedjora-go/internal/config"
	"github.com/kedjora/kedjora-go/internal/handler"
	"github.com/kedjora/kedjora-go/internal/handler/api"
	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/scheduler"
	"github.com/kedjora/kedjora-go/internal/service"
	"github.com/kedjora/kedjora-go/internal/session"
	"github.com/kedjora/kedjora-go/internal/shell"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/web"
)

// requestTimeout bounds every request.
const requestTimeout = 30 * time.Second

// app holds the process-wide dependencies, built once at startup and passed
// to the router explicitly.
type app struct {
	cfg             *config.Config
	db              *sql.DB
	sessions        *session.Manager
	flash           *scs.SessionManager
	cache           *cache.Manager
	renderer        *render.Renderer
	events          *service.EventService
	content         *service.ContentService
	catalog         *service.Catalog
	verifier        *auth.Verifier
	loginProtection *middleware.LoginProtection
	publicLimiter   *middleware.RateLimiter
}

// newApp wires the dependencies. The signing secret was validated by
// config.Load; NewManager checks it again so a Manager can never exist
// without a usable key.
func newApp(cfg *config.Config, db *sql.DB) (*app, error) {
	sessions, err := session.NewManager(session.Options{
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL,
		CookieName: cfg.SessionCookie,
		Secure:     !cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing session manager: %w", err)
	}

	flash := session.NewFlash(db, cfg.IsDevelopment())

	cm := cache.NewManager(cache.NewCache(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}), time.Duration(cfg.CacheTTL)*time.Second)
	slog.Info(handler.LogCacheManagerInit, "redis", cfg.UseRedisCache())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: flash,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}

	verifier, err := auth.NewVerifier(store.New(db), cfg.AuthTimeout)
	if err != nil {
		return nil, fmt.Errorf("initializing credential verifier: %w", err)
	}

	events := service.NewEventService(db)
	return &app{
		cfg:             cfg,
		db:              db,
		sessions:        sessions,
		flash:           flash,
		cache:           cm,
		renderer:        renderer,
		events:          events,
		content:         service.NewContentService(db, cm, events),
		catalog:         service.NewCatalog(db, cm),
		verifier:        verifier,
		loginProtection: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		publicLimiter:   middleware.NewRateLimiter(1, 5),
	}, nil
}

func (a *app) close() {
	a.loginProtection.Stop()
	if err := a.cache.Close(); err != nil {
		slog.Error("error closing cache", "error", err)
	}
}

// routes builds the router. The guard runs for every request before any
// route matches.
func (a *app) routes() (http.Handler, error) {
	cfg := a.cfg
	isDev := cfg.IsDevelopment()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))
	r.Use(middleware.RequestPath)
	r.Use(a.flash.LoadAndSave)
	r.Use(middleware.Guard(a.sessions, middleware.GuardConfig{TrustForwardedProto: cfg.TrustProxy}))

	csrf := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), isDev, cfg.ServerAddr()))

	authHandler := handler.NewAuthHandler(a.db, a.renderer, a.sessions, a.verifier, a.events, a.loginProtection)
	adminHandler := handler.NewAdminHandler(a.content, a.renderer)
	eventsHandler := handler.NewEventsHandler(a.events, a.renderer)
	frontendHandler := handler.NewFrontendHandler(a.catalog, a.content, a.renderer)
	healthHandler := handler.NewHealthHandler(a.db, a.sessions, a.cache, filepath.Dir(cfg.DBPath))
	seoHandler := handler.NewSEOHandler(a.catalog, isDev, cfg.TrustProxy)
	apiHandler := api.NewHandler(a.content, a.sessions)
	apiHandler.SetOrderLimit(a.publicLimiter.Middleware())
	gate := shell.NewGate(a.sessions, cfg.TrustProxy)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)

	// Public site
	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteServices, frontendHandler.Services)
	r.Get(handler.RouteServices+handler.RouteParamSlug, frontendHandler.Service)
	r.Get(handler.RoutePortfolio, frontendHandler.Portfolio)
	r.Get(handler.RoutePortfolio+handler.RouteParamSlug, frontendHandler.PortfolioItem)
	r.Get(handler.RouteBlog, frontendHandler.Blog)
	r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.BlogPost)
	r.Get(handler.RouteTestimonials, frontendHandler.Testimonials)
	r.Get(handler.RouteAbout, frontendHandler.About)
	r.Get(handler.RouteContact, frontendHandler.Contact)
	r.With(csrf, a.publicLimiter.HTMLMiddleware()).Post(handler.RouteContact, frontendHandler.SubmitContact)

	// Login and logout. /login is redirected by the guard.
	r.Route("/auth", func(r chi.Router) {
		r.Use(csrf)
		r.Get(handler.RouteAuthLogin, authHandler.LoginForm)
		r.With(a.loginProtection.Middleware()).Post(handler.RouteAuthLogin, authHandler.Login)
		r.Get(handler.RouteAuthLogout, authHandler.Logout)
		r.Post(handler.RouteAuthLogout, authHandler.Logout)
	})

	// JSON API. The public order endpoint carries no session and is rate
	// limited instead of CSRF checked.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SkipCSRF("/api/orders"))
		r.Use(csrf)
		r.Get("/auth"+handler.RouteAuthSession, authHandler.Session)
		apiHandler.Routes(r)
	})

	// Admin pages: the guard has already redirected anonymous requests; the
	// shell gate checks again on its own.
	r.Route(middleware.AdminRoot, func(r chi.Router) {
		r.Use(gate.Wrap)
		r.Get(handler.RouteRoot, adminHandler.Dashboard)

		r.Get(handler.RouteServices, adminHandler.Services)
		r.Get(handler.RouteServices+handler.RouteSuffixNew, adminHandler.NewService)
		r.Get(handler.RouteServicesID+handler.RouteSuffixEdit, adminHandler.EditService)
		r.Get(handler.RouteServicesID+handler.RouteSuffixDelete, adminHandler.DeleteService)

		r.Get(handler.RoutePortfolio, adminHandler.Portfolio)
		r.Get(handler.RoutePortfolio+handler.RouteSuffixNew, adminHandler.NewPortfolio)
		r.Get(handler.RoutePortfolioID+handler.RouteSuffixEdit, adminHandler.EditPortfolio)

		r.Get(handler.RouteTestimonials, adminHandler.Testimonials)
		r.Get(handler.RouteTestimonials+handler.RouteSuffixNew, adminHandler.NewTestimonial)
		r.Get(handler.RouteTestimonialsID+handler.RouteSuffixEdit, adminHandler.EditTestimonial)

		r.Get(handler.RouteOrders, adminHandler.Orders)
		r.Get(handler.RouteOrdersID, adminHandler.Order)

		r.Get(handler.RouteSettings, adminHandler.Settings)
		r.With(middleware.RequireRole(middleware.RoleAdmin)).Get(handler.RouteEvents, eventsHandler.List)
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", middleware.StaticCache(86400, isDev)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	r.NotFound(frontendHandler.NotFound)
	return r, nil
}

// serve runs the HTTP server until SIGINT or SIGTERM.
func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)
	slog.Info("database ready")

	useEventLog(db, cfg)

	ctx := context.Background()
	if err := seed(ctx, db, cfg, cfg.DoSeed); err != nil {
		return err
	}

	a, err := newApp(cfg, db)
	if err != nil {
		return err
	}
	defer a.close()

	sched := scheduler.New(a.events, cfg.EventRetentionDays, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router, err := a.routes()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete confirmation routes.
	RouteSuffixDelete = "/delete"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteServices is the services route.
	RouteServices = "/services"
	// RoutePortfolio is the portfolio route.
	RoutePortfolio = "/portfolio"
	// RouteTestimonials is the testimonials route.
	RouteTestimonials = "/testimonials"
	// RouteBlog is the blog route.
	RouteBlog = "/blog"
	// RouteAbout is the about route.
	RouteAbout = "/about"
	// RouteContact is the contact route.
	RouteContact = "/contact"

	// RouteOrders is the orders admin route.
	RouteOrders = "/orders"
	// RouteSettings is the page settings admin route.
	RouteSettings = "/settings"
	// RouteEvents is the audit log admin route.
	RouteEvents = "/events"

	// RouteServicesID is the services ID route pattern.
	RouteServicesID = RouteServices + RouteParamID
	// RoutePortfolioID is the portfolio ID route pattern.
	RoutePortfolioID = RoutePortfolio + RouteParamID
	// RouteTestimonialsID is the testimonials ID route pattern.
	RouteTestimonialsID = RouteTestimonials + RouteParamID
	// RouteOrdersID is the orders ID route pattern.
	RouteOrdersID = RouteOrders + RouteParamID

	// RouteAuthLogin is the login route under /auth.
	RouteAuthLogin = "/login"
	// RouteAuthLogout is the logout route under /auth.
	RouteAuthLogout = "/logout"
	// RouteAuthSession is the session status route under /api/auth.
	RouteAuthSession = "/session"
)

const (
	redirectAdmin         = "/admin"
	redirectLogin         = "/auth/login"
	redirectContact       = RouteContact
	redirectAdminServices = redirectAdmin + RouteServices
	redirectAdminOrders   = redirectAdmin + RouteOrders
)

// Utility constants used by main.go.
const (
	// LogCacheManagerInit is the log message for cache manager initialization.
	LogCacheManagerInit = "cache manager initialized"
	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"
)

// Messages shown to users.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgOrderReceived      = "Thank you! Your request has been sent. We will get back to you soon."
	msgLoggedOut          = "You have been logged out."
)

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded html/template views and executes them
// with the shared layout data.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/kedjora/kedjora-go/internal/content"
)

// Template groups. Each group is parsed with its own layout chain.
const (
	groupPublic = "public"
	groupAdmin  = "admin"
	groupAuth   = "auth"
)

const (
	baseLayout  = "layouts/base.html"
	adminLayout = "layouts/admin.html"
)

// Flash session keys.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Flash types understood by the layouts.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		now:            time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all page templates. Admin pages get the admin layout
// on top of the base layout; public and auth pages use the base layout only.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	layouts := map[string][]string{
		groupPublic: {baseLayout},
		groupAuth:   {baseLayout},
		groupAdmin:  {baseLayout, adminLayout},
	}

	for group, chain := range layouts {
		pages, err := templateFiles(templatesFS, group)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", group, err)
		}

		for _, page := range pages {
			name := group + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{}, chain...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	return nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateFuncs returns the functions available to every template.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"truncate":    truncate,
		"excerpt":     content.Excerpt,
		"markdown":    content.RenderMarkdown,
		"sanitize":    content.HTML,
		"deref":       deref,
		"join":        strings.Join,
		"stars":       stars,
		"statusLabel": statusLabel,
		"statusClass": func(status string) string {
			return "status-" + strings.ReplaceAll(strings.ToLower(status), "_", "-")
		},
		"navActive": navActive,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
	}
}

// truncate shortens s to at most length runes, appending "...".
func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// stars renders a 1..5 rating as filled and empty stars.
func stars(rating int64) string {
	n := int(min(max(rating, 0), 5))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func statusLabel(status string) string {
	switch status {
	case "PENDING":
		return "Pending"
	case "IN_PROGRESS":
		return "In progress"
	case "COMPLETED":
		return "Completed"
	case "CANCELLED":
		return "Cancelled"
	default:
		return status
	}
}

// navActive reports whether current is prefix or a page below it. The root
// prefixes "/" and "/admin" only match exactly.
func navActive(current, prefix string) bool {
	if prefix == "/" || prefix == "/admin" {
		return current == prefix
	}
	return current == prefix || strings.HasPrefix(current, prefix+"/")
}

// User is the signed-in user shown in the admin chrome.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Description string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
	CurrentPath string
	User        *User
	// ShellState is the initial state of the admin shell.
	ShellState string
	IsDev      bool
}

// Render renders a template with a 200 status.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code. Nothing is
// written when the template fails.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.IsDev = r.isDev
	if data.CurrentPath == "" {
		data.CurrentPath = req.URL.Path
	}

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), flashKey); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), flashTypeKey)
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// RenderPage renders a template and answers 500 if that fails.
func (r *Renderer) RenderPage(w http.ResponseWriter, req *http.Request, name string, data TemplateData) {
	if err := r.Render(w, req, name, data); err != nil {
		slog.ErrorContext(req.Context(), "render failed", "template", name, "error", err, "path", req.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), flashKey, message)
		r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
	}
}

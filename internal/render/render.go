// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for both the public
// site and the admin interface. Templates are embedded in the binary;
// admin pages share a base layout while login and 2FA pages stand alone.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"devfolio/internal/middleware"
	"devfolio/internal/session"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section (e.g., "dashboard", "projects")
	SiteName  string         // Site display name
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flash     string         // One-time notification message
	Error     string         // Form error message
}

// Renderer handles template parsing and execution.
type Renderer struct {
	admin    map[string]*template.Template
	public   map[string]*template.Template
	siteName string
}

// standaloneTemplates lists admin templates that render as full HTML
// pages without the base layout.
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Admin page templates are paired with the admin base
// layout, public ones with the site layout.
func New(siteName string, devMode bool) (*Renderer, error) {
	funcMap := template.FuncMap{
		// activeClass highlights the current admin nav section.
		"activeClass": func(current, target string) string {
			if current == target {
				return "bg-gray-900 text-white"
			}
			return "text-gray-300 hover:bg-gray-700 hover:text-white"
		},
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// isDev returns true when the app runs in development mode.
		"isDev": func() bool {
			return devMode
		},
	}

	r := &Renderer{
		admin:    make(map[string]*template.Template),
		public:   make(map[string]*template.Template),
		siteName: siteName,
	}

	if err := r.parseSet(r.admin, "templates/admin", "base.html", funcMap); err != nil {
		return nil, err
	}
	if err := r.parseSet(r.public, "templates/public", "site.html", funcMap); err != nil {
		return nil, err
	}
	return r, nil
}

// parseSet parses every page template in dir, pairing each with the
// layout unless it is a standalone page.
func (rn *Renderer) parseSet(dst map[string]*template.Template, dir, layout string, funcMap template.FuncMap) error {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read embedded templates %s: %w", dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == layout {
			continue
		}

		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(funcMap).ParseFS(
				templateFS, dir+"/"+name,
			)
		} else {
			tmpl, parseErr = template.New(layout).Funcs(funcMap).ParseFS(
				templateFS, dir+"/"+layout, dir+"/"+name,
			)
		}
		if parseErr != nil {
			return fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		dst[tmplName] = tmpl
	}
	return nil
}

// Admin renders an admin page. Page templates are executed inside the
// admin base layout; standalone pages (login, 2FA) render on their own.
func (rn *Renderer) Admin(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.render(w, r, rn.admin, "base.html", name, data)
}

// Public renders a public page inside the site layout.
func (rn *Renderer) Public(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.render(w, r, rn.public, "site.html", name, data)
}

// PublicStatus renders a public page with a non-200 status code, such
// as the project not-found page.
func (rn *Renderer) PublicStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	rn.render(w, r, rn.public, "site.html", name, data)
}

func (rn *Renderer) render(w http.ResponseWriter, r *http.Request, set map[string]*template.Template, layout, name string, data *PageData) {
	tmpl, ok := set[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}
	if data.SiteName == "" {
		data.SiteName = rn.siteName
	}
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := layout
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := tmpl.ExecuteTemplate(w, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devfolio/internal/catalog"
	"devfolio/internal/models"
	"devfolio/internal/render"
	"devfolio/internal/store"
)

// Public groups handlers for the visitor-facing site: the project
// gallery, project detail pages, and the contact form.
type Public struct {
	renderer     *render.Renderer
	loader       *catalog.Loader
	projectStore *store.ProjectStore
	imageStore   *store.ProjectImageStore
	contactStore *store.ContactStore
	pageSize     int
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, loader *catalog.Loader, projectStore *store.ProjectStore, imageStore *store.ProjectImageStore, contactStore *store.ContactStore, pageSize int) *Public {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &Public{
		renderer:     renderer,
		loader:       loader,
		projectStore: projectStore,
		imageStore:   imageStore,
		contactStore: contactStore,
		pageSize:     pageSize,
	}
}

// Home renders the landing page: the filtered, paginated project
// gallery plus the contact form. Filter and page come from the query
// string, so every gallery state has a shareable URL.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	cat, err := p.loader.Load(r.Context())
	if err != nil {
		slog.Error("catalog load failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	category := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	view := catalog.DeriveView(cat.Projects, category, page, p.pageSize)

	p.renderer.Public(w, r, "home", &render.PageData{
		Section: "home",
		Flash:   flashParam(r),
		Data: map[string]any{
			"View":       view,
			"Categories": cat.Categories,
		},
	})
}

// Project renders a project detail page, or the not-found page when the
// ID is unknown or malformed.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r)
		return
	}

	project, err := p.projectStore.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if project == nil {
		p.notFound(w, r)
		return
	}

	images, err := p.imageStore.ListByProject(id)
	if err != nil {
		slog.Error("list project images failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Public(w, r, "project", &render.PageData{
		Title: project.Title,
		Data: map[string]any{
			"Project": project,
			"Images":  images,
		},
	})
}

// ContactSubmit stores a contact form message and sends the visitor
// back to the form with a confirmation.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	msg := &models.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if errMsg := validateContact(msg); errMsg != "" {
		p.homeWithError(w, r, errMsg)
		return
	}

	if _, err := p.contactStore.Create(msg); err != nil {
		slog.Error("save contact message failed", "error", err)
		p.homeWithError(w, r, "Something went wrong. Please try again later.")
		return
	}

	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}

func (p *Public) notFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.PublicStatus(w, r, http.StatusNotFound, "notfound", &render.PageData{
		Title: "Not found",
	})
}

// homeWithError re-renders the landing page with a contact form error.
func (p *Public) homeWithError(w http.ResponseWriter, r *http.Request, errMsg string) {
	cat, err := p.loader.Load(r.Context())
	if err != nil {
		slog.Error("catalog load failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := catalog.DeriveView(cat.Projects, models.CategoryAll, 1, p.pageSize)
	p.renderer.Public(w, r, "home", &render.PageData{
		Section: "home",
		Error:   errMsg,
		Data: map[string]any{
			"View":       view,
			"Categories": cat.Categories,
		},
	})
}

// flashParam maps known query flags to a one-time confirmation message.
func flashParam(r *http.Request) string {
	if r.URL.Query().Get("sent") == "1" {
		return "Thanks for reaching out. I will get back to you soon."
	}
	return ""
}

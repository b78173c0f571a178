// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Devfolio site.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devfolio/internal/models"
	"devfolio/internal/publish"
	"devfolio/internal/render"
	"devfolio/internal/store"
)

// maxUploadBytes caps the total size of a project form submission,
// gallery images included.
const maxUploadBytes = 32 << 20

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	projectStore  *store.ProjectStore
	categoryStore *store.CategoryStore
	imageStore    *store.ProjectImageStore
	contactStore  *store.ContactStore
	coordinator   *publish.Coordinator
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, projectStore *store.ProjectStore, categoryStore *store.CategoryStore, imageStore *store.ProjectImageStore, contactStore *store.ContactStore, coordinator *publish.Coordinator) *Admin {
	return &Admin{
		renderer:      renderer,
		projectStore:  projectStore,
		categoryStore: categoryStore,
		imageStore:    imageStore,
		contactStore:  contactStore,
		coordinator:   coordinator,
	}
}

// Dashboard shows counts for the main entities.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	projectCount, err := a.projectStore.Count()
	if err != nil {
		a.serverError(w, "count projects", err)
		return
	}
	categories, err := a.categoryStore.List()
	if err != nil {
		a.serverError(w, "list categories", err)
		return
	}
	messages, err := a.contactStore.List()
	if err != nil {
		a.serverError(w, "list messages", err)
		return
	}

	a.renderer.Admin(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"ProjectCount":  projectCount,
			"CategoryCount": len(categories),
			"MessageCount":  len(messages),
		},
	})
}

// Projects lists all projects for management.
func (a *Admin) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projectStore.List()
	if err != nil {
		a.serverError(w, "list projects", err)
		return
	}

	a.renderer.Admin(w, r, "projects", &render.PageData{
		Title:   "Projects",
		Section: "projects",
		Flash:   adminFlash(r),
		Data:    map[string]any{"Projects": projects},
	})
}

// NewProjectForm renders an empty project form.
func (a *Admin) NewProjectForm(w http.ResponseWriter, r *http.Request) {
	a.projectForm(w, r, &models.Project{}, nil, false, "")
}

// CreateProject handles the new-project form submission, including the
// gallery image uploads.
func (a *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, uploads, errMsg := a.parseProjectForm(r)
	if errMsg != "" {
		a.projectForm(w, r, project, nil, false, errMsg)
		return
	}

	created, err := a.coordinator.CreateProject(r.Context(), project, uploads)
	if err != nil {
		slog.Error("create project failed", "error", err)
		if created != nil {
			// The row exists; send the admin to the edit form to retry
			// the remaining uploads. The flag keeps the failure visible
			// after the redirect.
			http.Redirect(w, r, "/admin/projects/"+created.ID.String()+"?upload_failed=1", http.StatusSeeOther)
			return
		}
		a.projectForm(w, r, project, nil, false, "Could not save the project.")
		return
	}

	http.Redirect(w, r, "/admin/projects?saved=1", http.StatusSeeOther)
}

// EditProjectForm renders the form pre-filled with an existing project.
func (a *Admin) EditProjectForm(w http.ResponseWriter, r *http.Request) {
	project, ok := a.findProject(w, r)
	if !ok {
		return
	}

	images, err := a.imageStore.ListByProject(project.ID)
	if err != nil {
		a.serverError(w, "list project images", err)
		return
	}

	errMsg := ""
	if r.URL.Query().Get("upload_failed") == "1" {
		errMsg = "Not all images were uploaded. The project is saved; check the gallery below and retry the missing files."
	}

	a.projectForm(w, r, project, images, true, errMsg)
}

// UpdateProject handles the edit form submission.
func (a *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.findProject(w, r)
	if !ok {
		return
	}

	project, uploads, errMsg := a.parseProjectForm(r)
	project.ID = existing.ID
	if errMsg != "" {
		images, _ := a.imageStore.ListByProject(existing.ID)
		a.projectForm(w, r, project, images, true, errMsg)
		return
	}

	images, err := a.imageStore.ListByProject(existing.ID)
	if err != nil {
		a.serverError(w, "list project images", err)
		return
	}

	if err := a.coordinator.UpdateProject(r.Context(), project, len(images), uploads); err != nil {
		slog.Error("update project failed", "error", err, "id", project.ID)
		a.projectForm(w, r, project, images, true, "Could not save all changes. Check the gallery and retry.")
		return
	}

	http.Redirect(w, r, "/admin/projects?saved=1", http.StatusSeeOther)
}

// DeleteProject removes a project, its image rows, and its stored objects.
func (a *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := a.coordinator.DeleteProject(r.Context(), id); err != nil {
		a.serverError(w, "delete project", err)
		return
	}

	http.Redirect(w, r, "/admin/projects?deleted=1", http.StatusSeeOther)
}

// Categories lists categories with project counts and the add form.
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	a.categoriesPage(w, r, "")
}

// CreateCategory adds a category, deriving its slug from the name.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")

	if _, err := a.coordinator.CreateCategory(name); err != nil {
		if errors.Is(err, publish.ErrSlugTaken) {
			a.categoriesPage(w, r, "A category with that slug already exists.")
			return
		}
		slog.Error("create category failed", "error", err)
		a.categoriesPage(w, r, "Could not create the category.")
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// UpdateCategory renames a category.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := a.coordinator.RenameCategory(id, r.FormValue("name")); err != nil {
		a.serverError(w, "rename category", err)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// DeleteCategory removes a category. Projects keep their slug value.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := a.coordinator.DeleteCategory(id); err != nil {
		a.serverError(w, "delete category", err)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// Messages lists contact form submissions, newest first.
func (a *Admin) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := a.contactStore.List()
	if err != nil {
		a.serverError(w, "list messages", err)
		return
	}

	a.renderer.Admin(w, r, "messages", &render.PageData{
		Title:   "Messages",
		Section: "messages",
		Data:    map[string]any{"Messages": messages},
	})
}

// parseProjectForm reads the multipart project form into a model plus
// the pending image uploads. The returned error message is empty when
// the input is valid.
func (a *Admin) parseProjectForm(r *http.Request) (*models.Project, []publish.ImageUpload, string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return &models.Project{}, nil, "The submission is too large."
	}

	stars, _ := strconv.Atoi(r.FormValue("stars"))
	project := &models.Project{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		LongDescription: r.FormValue("long_description"),
		Category:        r.FormValue("category"),
		Image:           r.FormValue("image"),
		Tags:            models.ParseTags(r.FormValue("tags")),
		GitHubURL:       optionalField(r.FormValue("github_url")),
		LiveURL:         optionalField(r.FormValue("live_url")),
		Stars:           stars,
	}

	if errMsg := validateProject(project); errMsg != "" {
		return project, nil, errMsg
	}

	var uploads []publish.ImageUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				return project, nil, "Could not read one of the uploaded images."
			}
			uploads = append(uploads, publish.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
				Size:        header.Size,
			})
		}
	}

	return project, uploads, ""
}

// projectForm renders the create/edit form.
func (a *Admin) projectForm(w http.ResponseWriter, r *http.Request, project *models.Project, images []models.ProjectImage, isEdit bool, errMsg string) {
	categories, err := a.categoryStore.List()
	if err != nil {
		a.serverError(w, "list categories", err)
		return
	}

	title := "New Project"
	if isEdit {
		title = "Edit Project"
	}

	a.renderer.Admin(w, r, "project_form", &render.PageData{
		Title:   title,
		Section: "projects",
		Error:   errMsg,
		Data: map[string]any{
			"Project":    project,
			"Categories": categories,
			"Images":     images,
			"IsEdit":     isEdit,
			"TagsValue":  models.JoinTags(project.Tags),
		},
	})
}

// categoriesPage renders the category management page.
func (a *Admin) categoriesPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	categories, err := a.categoryStore.List()
	if err != nil {
		a.serverError(w, "list categories", err)
		return
	}

	a.renderer.Admin(w, r, "categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Error:   errMsg,
		Data:    map[string]any{"Categories": categories},
	})
}

// findProject resolves the {id} URL parameter to a project, writing the
// appropriate error response when it cannot.
func (a *Admin) findProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	project, err := a.projectStore.FindByID(id)
	if err != nil {
		a.serverError(w, "find project", err)
		return nil, false
	}
	if project == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return project, true
}

func (a *Admin) serverError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// adminFlash maps known query flags to a confirmation message.
func adminFlash(r *http.Request) string {
	switch {
	case r.URL.Query().Get("saved") == "1":
		return "Project saved."
	case r.URL.Query().Get("deleted") == "1":
		return "Project deleted."
	}
	return ""
}

// optionalField returns nil for empty form values so the database stores
// NULL instead of an empty string.
func optionalField(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

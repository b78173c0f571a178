// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish coordinates admin mutations that touch both the
// database and object storage: project create/update with gallery image
// uploads, project delete with storage cleanup, and category lifecycle.
package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"devfolio/internal/models"
	"devfolio/internal/slug"
)

// ProjectWriter is the project store surface the coordinator needs.
type ProjectWriter interface {
	Create(p *models.Project) (*models.Project, error)
	Update(p *models.Project) error
	Delete(id uuid.UUID) error
}

// ImageWriter is the project image store surface the coordinator needs.
type ImageWriter interface {
	Create(img *models.ProjectImage) (*models.ProjectImage, error)
	URLsByProject(projectID uuid.UUID) ([]string, error)
}

// CategoryWriter is the category store surface the coordinator needs.
type CategoryWriter interface {
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
	FindBySlug(slug string) (*models.Category, error)
}

// Uploader is the object storage surface the coordinator needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	ExtractKey(rawURL string) (string, bool)
}

// ImageUpload is one file from the admin form, ready to stream to storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}

// Coordinator runs multi-step admin mutations in a fixed order.
type Coordinator struct {
	projects   ProjectWriter
	images     ImageWriter
	categories CategoryWriter
	storage    Uploader
	logger     *slog.Logger
	now        func() time.Time
}

// NewCoordinator creates a Coordinator. storage may be nil when object
// storage is not configured; image uploads then fail with a clear error.
func NewCoordinator(projects ProjectWriter, images ImageWriter, categories CategoryWriter, storage Uploader, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		projects:   projects,
		images:     images,
		categories: categories,
		storage:    storage,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateProject inserts the project row, then uploads and records its
// gallery images one at a time in form order. The first image becomes
// the primary. A failed upload aborts the remaining ones but keeps the
// project and the images already stored; the admin retries the rest
// from the edit form.
func (c *Coordinator) CreateProject(ctx context.Context, p *models.Project, uploads []ImageUpload) (*models.Project, error) {
	created, err := c.projects.Create(p)
	if err != nil {
		return nil, err
	}

	if err := c.attachImages(ctx, created, uploads); err != nil {
		return created, err
	}
	return created, nil
}

// UpdateProject saves the project row, then appends any new gallery
// images after the existing ones.
func (c *Coordinator) UpdateProject(ctx context.Context, p *models.Project, existingCount int, uploads []ImageUpload) error {
	if err := c.projects.Update(p); err != nil {
		return err
	}
	return c.attachImagesFrom(ctx, p, existingCount, uploads)
}

func (c *Coordinator) attachImages(ctx context.Context, p *models.Project, uploads []ImageUpload) error {
	return c.attachImagesFrom(ctx, p, 0, uploads)
}

// attachImagesFrom uploads each file and records its image row. Uploads
// run sequentially so display order matches form order; the loop stops
// at the first failure.
func (c *Coordinator) attachImagesFrom(ctx context.Context, p *models.Project, startOrder int, uploads []ImageUpload) error {
	if len(uploads) == 0 {
		return nil
	}
	if c.storage == nil {
		return fmt.Errorf("attach images: object storage not configured")
	}

	for i, up := range uploads {
		order := startOrder + i
		key := imageKey(p.ID, c.now(), order, up.Filename)

		if err := c.storage.Upload(ctx, key, up.ContentType, up.Body, up.Size); err != nil {
			return fmt.Errorf("upload image %d: %w", order, err)
		}

		img := &models.ProjectImage{
			ProjectID:    p.ID,
			ImageURL:     c.storage.FileURL(key),
			IsPrimary:    order == 0,
			DisplayOrder: order,
		}
		if _, err := c.images.Create(img); err != nil {
			return fmt.Errorf("record image %d: %w", order, err)
		}
	}
	return nil
}

// imageKey builds the storage key for a gallery image. The project ID
// prefixes the key so a project's objects group together; the timestamp
// keeps re-uploads from colliding.
func imageKey(projectID uuid.UUID, now time.Time, order int, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s-%d-%d%s", projectID, now.UnixNano(), order, ext)
}

// DeleteProject removes the project row (image rows cascade with it),
// then clears the stored objects. Storage cleanup is best effort: a
// failed object delete is logged and skipped, never resurrecting the
// project.
func (c *Coordinator) DeleteProject(ctx context.Context, id uuid.UUID) error {
	var urls []string
	if c.storage != nil {
		var err error
		urls, err = c.images.URLsByProject(id)
		if err != nil {
			return err
		}
	}

	if err := c.projects.Delete(id); err != nil {
		return err
	}

	for _, u := range urls {
		key, ok := c.storage.ExtractKey(u)
		if !ok {
			continue
		}
		if err := c.storage.Delete(ctx, key); err != nil {
			c.logger.Warn("orphaned storage object", "key", key, "error", err)
		}
	}
	return nil
}

// CreateCategory creates a category, deriving the slug from the name.
// A duplicate slug is reported as ErrSlugTaken so the form can say so.
func (c *Coordinator) CreateCategory(name string) (*models.Category, error) {
	s := slug.Generate(name)
	if s == "" {
		return nil, fmt.Errorf("category name %q yields an empty slug", name)
	}

	existing, err := c.categories.FindBySlug(s)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	return c.categories.Create(&models.Category{Name: name, Slug: s})
}

// RenameCategory changes a category's display name. The slug is stable.
func (c *Coordinator) RenameCategory(id uuid.UUID, name string) error {
	return c.categories.Update(&models.Category{ID: id, Name: name})
}

// DeleteCategory removes a category. Projects keep their old slug and
// drop out of the filter list.
func (c *Coordinator) DeleteCategory(id uuid.UUID) error {
	return c.categories.Delete(id)
}

// ErrSlugTaken is returned when a new category's slug already exists.
var ErrSlugTaken = fmt.Errorf("category slug already in use")

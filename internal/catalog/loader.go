// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog loads the public project catalog and derives the
// filtered, paginated view the gallery renders.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"devfolio/internal/models"
)

// ProjectLister provides the project list, newest first.
type ProjectLister interface {
	List() ([]models.Project, error)
}

// CategoryLister provides the category list, sorted by name.
type CategoryLister interface {
	List() ([]models.Category, error)
}

// Catalog holds everything the public gallery needs, fetched in one go.
type Catalog struct {
	Projects   []models.Project
	Categories []models.Category
}

// Loader fetches projects and categories together.
type Loader struct {
	projects   ProjectLister
	categories CategoryLister
}

// NewLoader creates a Loader backed by the given stores.
func NewLoader(projects ProjectLister, categories CategoryLister) *Loader {
	return &Loader{projects: projects, categories: categories}
}

// Load fetches both lists concurrently. Either failure fails the whole
// load; the gallery never renders a half-populated page.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var c Catalog
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := l.projects.List()
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		c.Projects = projects
		return nil
	})
	g.Go(func() error {
		categories, err := l.categories.List()
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		c.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Devfolio
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"devfolio/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// projectColumns lists the columns selected in project queries.
const projectColumns = `id, title, description, long_description, category,
	image, tags, github_url, live_url, stars, created_at, updated_at`

// scanProject scans a project row from the result set. Tags are stored as
// a single comma-separated text column and split on read.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var tags string
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.Category,
		&p.Image, &tags, &p.GitHubURL, &p.LiveURL, &p.Stars,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = models.ParseTags(tags)
	return &p, nil
}

// List returns all projects, newest first. This is the gallery ordering:
// the most recent work leads.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by ID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it with the generated ID.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (title, description, long_description, category,
			image, tags, github_url, live_url, stars)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+projectColumns,
		p.Title, p.Description, p.LongDescription, p.Category,
		p.Image, models.JoinTags(p.Tags), p.GitHubURL, p.LiveURL, p.Stars,
	)
	result, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, description = $2, long_description = $3, category = $4,
			image = $5, tags = $6, github_url = $7, live_url = $8, stars = $9,
			updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Description, p.LongDescription, p.Category,
		p.Image, models.JoinTags(p.Tags), p.GitHubURL, p.LiveURL, p.Stars, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project by ID. Its image rows go with it
// (ON DELETE CASCADE); the caller is responsible for the stored objects.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Count returns the total number of projects.
func (s *ProjectStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

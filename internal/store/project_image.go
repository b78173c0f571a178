// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"devfolio/internal/models"
)

// ProjectImageStore handles gallery image rows attached to projects.
type ProjectImageStore struct {
	db *sql.DB
}

// NewProjectImageStore creates a new ProjectImageStore with the given database connection.
func NewProjectImageStore(db *sql.DB) *ProjectImageStore {
	return &ProjectImageStore{db: db}
}

const projectImageColumns = `id, project_id, image_url, is_primary, display_order, created_at`

func scanProjectImage(scanner interface{ Scan(...any) error }) (*models.ProjectImage, error) {
	var img models.ProjectImage
	err := scanner.Scan(&img.ID, &img.ProjectID, &img.ImageURL,
		&img.IsPrimary, &img.DisplayOrder, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListByProject returns a project's images in display order.
func (s *ProjectImageStore) ListByProject(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := s.db.Query(`
		SELECT `+projectImageColumns+`
		FROM project_images
		WHERE project_id = $1
		ORDER BY display_order ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	var items []models.ProjectImage
	for rows.Next() {
		img, err := scanProjectImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project image: %w", err)
		}
		items = append(items, *img)
	}
	return items, rows.Err()
}

// Create inserts a new image row for a project.
func (s *ProjectImageStore) Create(img *models.ProjectImage) (*models.ProjectImage, error) {
	row := s.db.QueryRow(`
		INSERT INTO project_images (project_id, image_url, is_primary, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+projectImageColumns,
		img.ProjectID, img.ImageURL, img.IsPrimary, img.DisplayOrder,
	)
	created, err := scanProjectImage(row)
	if err != nil {
		return nil, fmt.Errorf("create project image: %w", err)
	}
	return created, nil
}

// Delete removes an image row and returns its URL so the caller can clean
// up the stored object.
func (s *ProjectImageStore) Delete(id uuid.UUID) (string, error) {
	var url string
	err := s.db.QueryRow(`
		DELETE FROM project_images WHERE id = $1 RETURNING image_url
	`, id).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("delete project image: %w", err)
	}
	return url, nil
}

// URLsByProject returns the image URLs for a project. Used before a
// project delete to clean up storage.
func (s *ProjectImageStore) URLsByProject(projectID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT image_url FROM project_images WHERE project_id = $1
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project image urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan image url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

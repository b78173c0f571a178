// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"devfolio/internal/models"
)

// ContactStore persists messages submitted through the public contact form.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create inserts a new contact message.
func (s *ContactStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	var created models.ContactMessage
	err := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at
	`, m.Name, m.Email, m.Message).Scan(
		&created.ID, &created.Name, &created.Email, &created.Message, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return &created, nil
}

// List returns all messages, newest first.
func (s *ContactStore) List() ([]models.ContactMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

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

// RoleStore answers role membership questions against the user_roles
// table. Roles live in their own table rather than on the user row so a
// compromised signup path can never self-assign admin.
type RoleStore struct {
	db *sql.DB
}

// NewRoleStore creates a new RoleStore with the given database connection.
func NewRoleStore(db *sql.DB) *RoleStore {
	return &RoleStore{db: db}
}

// HasRole reports whether the user holds the given role. Any database
// error is returned so callers can fail closed instead of guessing.
func (s *RoleStore) HasRole(userID uuid.UUID, role models.Role) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`, userID, role).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

// Grant gives the user a role. Granting a role twice is a no-op.
func (s *RoleStore) Grant(userID uuid.UUID, role models.Role) error {
	_, err := s.db.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`, userID, role)
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

// Revoke removes a role from the user.
func (s *RoleStore) Revoke(userID uuid.UUID, role models.Role) error {
	_, err := s.db.Exec(`
		DELETE FROM user_roles WHERE user_id = $1 AND role = $2
	`, userID, role)
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// starterCategories are created on first boot so the gallery filter pills
// have something to show before the operator adds their own.
var starterCategories = []struct {
	Name string
	Slug string
}{
	{"Web Apps", "web-apps"},
	{"Mobile Apps", "mobile-apps"},
	{"Open Source", "open-source"},
}

// Seed populates the database with initial development data: a default
// admin user with the admin role granted in user_roles, and a few starter
// categories. The admin will be prompted to set up 2FA on first login
// (totp_enabled = false). No-op if users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, totp_enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin@devfolio.local", string(hash), "Admin", false).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Possession of an account is not enough for dashboard access — the
	// explicit role row is what the admin guard checks.
	if _, err := tx.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
	`, userID); err != nil {
		return fmt.Errorf("seed insert admin role: %w", err)
	}

	for _, c := range starterCategories {
		if _, err := tx.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
		`, c.Name, c.Slug); err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@devfolio.local",
		"password", "admin",
	)

	return nil
}

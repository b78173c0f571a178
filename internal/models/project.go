// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryAll is the sentinel category slug meaning "no filter" in the
// public project gallery.
const CategoryAll = "all"

// Project represents a portfolio entry shown in the public gallery.
// Category holds the slug of the owning Category; Image is the primary
// image URL shown on cards and at the top of the detail page.
type Project struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	Category        string    `json:"category"`
	Image           string    `json:"image"`
	Tags            []string  `json:"tags"`
	GitHubURL       *string   `json:"github_url,omitempty"`
	LiveURL         *string   `json:"live_url,omitempty"`
	Stars           int       `json:"stars"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ParseTags normalizes a comma-separated tag string into an ordered list.
// Entries are trimmed and empty entries are dropped, so "Go, , chi" yields
// ["Go", "chi"]. Order is preserved.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags, used to render the tags back into
// the admin form and to persist them as a single text column.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

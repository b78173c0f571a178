package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"devfolio/internal/models"
)

// Validation limits for form fields.
const (
	maxTitleLen    = 200
	maxDescLen     = 1_000
	maxLongDescLen = 20_000
	maxURLLen      = 500
	maxTagsLen     = 500
	maxNameLen     = 200
	maxMessageLen  = 5_000
)

// validateProject checks project form inputs and returns the first error found.
func validateProject(p *models.Project) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	if strings.TrimSpace(p.Description) == "" {
		return "Description is required."
	}
	if utf8.RuneCountInString(p.Description) > maxDescLen {
		return "Description is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(p.LongDescription) > maxLongDescLen {
		return "Long description is too long (max 20,000 characters)."
	}
	if p.GitHubURL != nil && utf8.RuneCountInString(*p.GitHubURL) > maxURLLen {
		return "GitHub URL is too long (max 500 characters)."
	}
	if p.LiveURL != nil && utf8.RuneCountInString(*p.LiveURL) > maxURLLen {
		return "Live URL is too long (max 500 characters)."
	}
	if utf8.RuneCountInString(models.JoinTags(p.Tags)) > maxTagsLen {
		return "Tags are too long (max 500 characters)."
	}
	if p.Stars < 0 {
		return "Stars cannot be negative."
	}
	return ""
}

// validateContact checks contact form inputs and returns the first error found.
func validateContact(m *models.ContactMessage) string {
	if strings.TrimSpace(m.Name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(m.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return "A valid email address is required."
	}
	if strings.TrimSpace(m.Message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(m.Message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

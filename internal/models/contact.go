package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a submission from the public contact form, kept for
// review in the admin inbox.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectImage is one gallery image belonging to a project. The file
// itself lives in object storage; ImageURL is its public URL. Exactly one
// image per project should have IsPrimary set — by convention the first
// one uploaded (DisplayOrder 0).
type ProjectImage struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	ImageURL     string    `json:"image_url"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

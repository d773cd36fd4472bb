package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Design is a customer's working copy of a catalog template. The document
// starts as a copy of the template's and is then owned by the editor.
type Design struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	TemplateID string          `json:"template_id"`
	Name       string          `json:"name"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Document   json.RawMessage `json:"document"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

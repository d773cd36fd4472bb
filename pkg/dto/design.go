package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateDesignRequest struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name,omitempty"`
}

type UpdateDesignRequest struct {
	Name     *string         `json:"name,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
	Version  int             `json:"version"`
}

type DesignResponse struct {
	ID         uuid.UUID       `json:"id"`
	TemplateID string          `json:"template_id"`
	Name       string          `json:"name"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Document   json.RawMessage `json:"document"`
	Version    int             `json:"version"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

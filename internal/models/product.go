package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	MainCategory string    `json:"main_category"`
	SubCategory  *string   `json:"sub_category,omitempty"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	PriceCents   *int      `json:"price_cents,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

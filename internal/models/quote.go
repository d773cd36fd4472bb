package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote request statuses
const (
	QuoteStatusNew       = "new"
	QuoteStatusContacted = "contacted"
	QuoteStatusQuoted    = "quoted"
	QuoteStatusClosed    = "closed"
)

func IsValidQuoteStatus(status string) bool {
	switch status {
	case QuoteStatusNew, QuoteStatusContacted, QuoteStatusQuoted, QuoteStatusClosed:
		return true
	}
	return false
}

type QuoteRequest struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Company    *string   `json:"company,omitempty"`
	Product    *string   `json:"product,omitempty"`
	TemplateID *string   `json:"template_id,omitempty"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

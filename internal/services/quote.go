package services

import (
	"context"
	"errors"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrQuoteNotFound = errors.New("quote request not found")
	ErrInvalidStatus = errors.New("invalid quote status")
)

const quoteColumns = `id, name, email, phone, company, product, template_id, message, status, created_at, updated_at`

// CreateQuoteInput is a quote form submission after validation.
type CreateQuoteInput struct {
	Name       string
	Email      string
	Phone      *string
	Company    *string
	Product    *string
	TemplateID *string
	Message    string
}

type QuoteService struct {
	db *database.DB
}

func NewQuoteService(db *database.DB) *QuoteService {
	return &QuoteService{db: db}
}

func scanQuote(row pgx.Row) (*models.QuoteRequest, error) {
	var q models.QuoteRequest
	err := row.Scan(
		&q.ID, &q.Name, &q.Email, &q.Phone, &q.Company, &q.Product,
		&q.TemplateID, &q.Message, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuoteService) Create(ctx context.Context, in CreateQuoteInput) (*models.QuoteRequest, error) {
	return scanQuote(s.db.Pool.QueryRow(ctx, `
		INSERT INTO quote_requests (name, email, phone, company, product, template_id, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+quoteColumns,
		in.Name, in.Email, in.Phone, in.Company, in.Product, in.TemplateID, in.Message))
}

// List returns quote requests newest first, optionally limited to one status.
func (s *QuoteService) List(ctx context.Context, status string) ([]models.QuoteRequest, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = s.db.Pool.Query(ctx, `SELECT `+quoteColumns+` FROM quote_requests ORDER BY created_at DESC`)
	} else {
		if !models.IsValidQuoteStatus(status) {
			return nil, ErrInvalidStatus
		}
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+quoteColumns+` FROM quote_requests
			WHERE status = $1
			ORDER BY created_at DESC
		`, status)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []models.QuoteRequest{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, rows.Err()
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error) {
	if !models.IsValidQuoteStatus(status) {
		return nil, ErrInvalidStatus
	}
	q, err := scanQuote(s.db.Pool.QueryRow(ctx, `
		UPDATE quote_requests SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+quoteColumns,
		status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	return q, err
}

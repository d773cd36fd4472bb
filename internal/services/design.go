package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrVersionConflict  = errors.New("version conflict: design has been modified")
	ErrDesignNotFound   = errors.New("design not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

const designColumns = `id, user_id, template_id, name, width, height, document, version, created_at, updated_at`

// DesignService stores customer designs. Every query is scoped to the owning
// user, so another user's design looks the same as a missing one.
type DesignService struct {
	db *database.DB
}

func NewDesignService(db *database.DB) *DesignService {
	return &DesignService{db: db}
}

func scanDesign(row pgx.Row) (*models.Design, error) {
	var d models.Design
	err := row.Scan(
		&d.ID, &d.UserID, &d.TemplateID, &d.Name, &d.Width, &d.Height,
		&d.Document, &d.Version, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateFromTemplate starts a design from a copy of the template's document
// and dimensions. An empty name falls back to the template's name.
func (s *DesignService) CreateFromTemplate(ctx context.Context, userID uuid.UUID, t catalog.Template, name string) (*models.Design, error) {
	if name == "" {
		name = t.Name
	}
	document := t.Document
	if len(document) == 0 {
		document = json.RawMessage("{}")
	}

	return scanDesign(s.db.Pool.QueryRow(ctx, `
		INSERT INTO designs (user_id, template_id, name, width, height, document)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+designColumns,
		userID, t.ID, name, t.Width, t.Height, document))
}

func (s *DesignService) GetByID(ctx context.Context, designID, userID uuid.UUID) (*models.Design, error) {
	d, err := scanDesign(s.db.Pool.QueryRow(ctx, `
		SELECT `+designColumns+` FROM designs
		WHERE id = $1 AND user_id = $2
	`, designID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDesignNotFound
	}
	return d, err
}

func (s *DesignService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Design, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+designColumns+` FROM designs
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designs := []models.Design{}
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

// Update applies the non-nil fields if the stored version still equals
// expectedVersion, bumping the version by one.
func (s *DesignService) Update(ctx context.Context, designID, userID uuid.UUID, name *string, document json.RawMessage, expectedVersion int) (*models.Design, error) {
	if name == nil && document == nil {
		return nil, ErrNoFieldsToUpdate
	}

	var doc any
	if document != nil {
		doc = document
	}

	d, err := scanDesign(s.db.Pool.QueryRow(ctx, `
		UPDATE designs
		SET name = COALESCE($1, name), document = COALESCE($2, document),
			version = version + 1, updated_at = NOW()
		WHERE id = $3 AND user_id = $4 AND version = $5
		RETURNING `+designColumns,
		name, doc, designID, userID, expectedVersion))
	if err != nil {
		return nil, s.checkVersionConflict(ctx, designID, userID, expectedVersion, err)
	}
	return d, nil
}

func (s *DesignService) checkVersionConflict(ctx context.Context, designID, userID uuid.UUID, expectedVersion int, originalErr error) error {
	var currentVersion int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT version FROM designs WHERE id = $1 AND user_id = $2
	`, designID, userID).Scan(&currentVersion)
	if err != nil {
		return ErrDesignNotFound
	}
	if currentVersion != expectedVersion {
		return ErrVersionConflict
	}
	return originalErr
}

func (s *DesignService) Delete(ctx context.Context, designID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM designs WHERE id = $1 AND user_id = $2`, designID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDesignNotFound
	}
	return nil
}

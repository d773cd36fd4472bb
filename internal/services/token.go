package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/google/uuid"
)

// TokenService persists hashed refresh tokens. Raw tokens never reach the
// database.
type TokenService struct {
	db *database.DB
}

func NewTokenService(db *database.DB) *TokenService {
	return &TokenService{db: db}
}

func (s *TokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

func (s *TokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash).Scan(&userID)
	return userID, err
}

// RotateRefreshToken replaces oldHash with newHash in one transaction so a
// refresh token can be redeemed only once.
func (s *TokenService) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, oldHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, newHash, expiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

// CleanupExpired deletes expired refresh tokens and reports how many went.
func (s *TokenService) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

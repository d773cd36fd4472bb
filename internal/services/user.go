package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/oauth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, email, name, avatar_url, provider, provider_id, global_role, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.GlobalRole, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateFromOAuth returns the shop account linked to the provider
// identity, creating a customer account on first sign-in. Email, name and
// avatar follow the provider profile on every sign-in.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	name := models.ClipUserName(info.Name)
	avatar := nullableString(info.AvatarURL)

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`, info.Provider, info.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		user, err = scanUser(s.db.Pool.QueryRow(ctx, `
			INSERT INTO users (email, name, avatar_url, provider, provider_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+userColumns,
			info.Email, name, avatar, info.Provider, info.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Email == info.Email && user.Name == name && sameString(user.AvatarURL, avatar) {
		return user, nil
	}
	user, err = scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET email = $1, name = $2, avatar_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+userColumns,
		info.Email, name, avatar, user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to refresh user profile: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return notFound(scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)))
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return notFound(scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))))
}

// Update renames the account. The name follows the same rules as the
// profile form.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	name, err := models.NormalizeUserName(name)
	if err != nil {
		return nil, err
	}
	return notFound(scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		name, id)))
}

// PromoteToSuperAdmin grants the platform admin role to the user with email.
func (s *UserService) PromoteToSuperAdmin(ctx context.Context, email string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET global_role = $1, updated_at = NOW()
		WHERE email = $2
	`, models.GlobalRoleSuperAdmin, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return nil
}

func notFound(u *models.User, err error) (*models.User, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// normalizeEmail matches the form sign-in stores addresses in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

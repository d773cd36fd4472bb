package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/oauth"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Provider:   "google",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
		GlobalRole: models.GlobalRoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, avatar_url, provider, provider_id, global_role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.AvatarURL, user.Provider, user.ProviderID, user.GlobalRole).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// WithAvatar sets the user's avatar URL
func WithAvatar(url string) UserOption {
	return func(u *models.User) {
		u.AvatarURL = &url
	}
}

// AsSuperAdmin gives the user the platform admin role
func AsSuperAdmin() UserOption {
	return func(u *models.User) {
		u.GlobalRole = models.GlobalRoleSuperAdmin
	}
}

// CreateProduct creates a test product in the given category
func (f *Fixtures) CreateProduct(t *testing.T, mainCategory string, subCategory *string) *models.Product {
	t.Helper()
	f.counter++

	p := &models.Product{
		Slug:         fmt.Sprintf("product-%d", f.counter),
		Name:         fmt.Sprintf("Test Product %d", f.counter),
		MainCategory: mainCategory,
		SubCategory:  subCategory,
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO products (slug, name, main_category, sub_category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Slug, p.Name, p.MainCategory, p.SubCategory).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return p
}

// CreateDesign creates a test design owned by user
func (f *Fixtures) CreateDesign(t *testing.T, user *models.User, templateID string) *models.Design {
	t.Helper()
	f.counter++

	d := &models.Design{
		UserID:     user.ID,
		TemplateID: templateID,
		Name:       fmt.Sprintf("Test Design %d", f.counter),
		Width:      48,
		Height:     24,
		Document:   json.RawMessage(`{}`),
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO designs (user_id, template_id, name, width, height, document)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at
	`, d.UserID, d.TemplateID, d.Name, d.Width, d.Height, d.Document).Scan(&d.ID, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create design: %v", err)
	}

	return d
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/oauth"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/internal/sse"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, globalRole string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// TemplateServiceInterface defines the methods used by handlers from TemplateService
type TemplateServiceInterface interface {
	List(b catalog.Browse) []catalog.Template
	Categories() []models.CategoryNode
	SubCategories(main string) []string
	GetByID(id string) (catalog.Template, error)
	Count() int
}

// ProductServiceInterface defines the methods used by handlers from ProductService
type ProductServiceInterface interface {
	List(ctx context.Context, mainCategory, subCategory string) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.CategoryNode, error)
	Create(ctx context.Context, in services.CreateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteServiceInterface defines the methods used by handlers from QuoteService
type QuoteServiceInterface interface {
	Create(ctx context.Context, in services.CreateQuoteInput) (*models.QuoteRequest, error)
	List(ctx context.Context, status string) ([]models.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error)
}

// DesignServiceInterface defines the methods used by handlers from DesignService
type DesignServiceInterface interface {
	CreateFromTemplate(ctx context.Context, userID uuid.UUID, t catalog.Template, name string) (*models.Design, error)
	GetByID(ctx context.Context, designID, userID uuid.UUID) (*models.Design, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Design, error)
	Update(ctx context.Context, designID, userID uuid.UUID, name *string, document json.RawMessage, expectedVersion int) (*models.Design, error)
	Delete(ctx context.Context, designID, userID uuid.UUID) error
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendQuoteNotification(to string, q *models.QuoteRequest) error
}

// HubInterface defines the methods used by handlers from the SSE hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	BroadcastQuoteCreated(e sse.QuoteCreatedEvent)
}

package testutil

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
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email, globalRole string) (*services.TokenPair, error) {
	args := m.Called(userID, email, globalRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

// MockProductService mocks the ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, mainCategory, subCategory string) ([]models.Product, error) {
	args := m.Called(ctx, mainCategory, subCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Categories(ctx context.Context) ([]models.CategoryNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryNode), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in services.CreateProductInput) (*models.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuoteService mocks the QuoteService
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Create(ctx context.Context, in services.CreateQuoteInput) (*models.QuoteRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, status string) ([]models.QuoteRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuoteRequest), args.Error(1)
}

func (m *MockQuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

// MockDesignService mocks the DesignService
type MockDesignService struct {
	mock.Mock
}

func (m *MockDesignService) CreateFromTemplate(ctx context.Context, userID uuid.UUID, t catalog.Template, name string) (*models.Design, error) {
	args := m.Called(ctx, userID, t, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) GetByID(ctx context.Context, designID, userID uuid.UUID) (*models.Design, error) {
	args := m.Called(ctx, designID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Design, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Design), args.Error(1)
}

func (m *MockDesignService) Update(ctx context.Context, designID, userID uuid.UUID, name *string, document json.RawMessage, expectedVersion int) (*models.Design, error) {
	args := m.Called(ctx, designID, userID, name, document, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignService) Delete(ctx context.Context, designID, userID uuid.UUID) error {
	args := m.Called(ctx, designID, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendQuoteNotification(to string, q *models.QuoteRequest) error {
	args := m.Called(to, q)
	return args.Error(0)
}

// MockHub mocks the SSE hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) BroadcastQuoteCreated(e sse.QuoteCreatedEvent) {
	m.Called(e)
}

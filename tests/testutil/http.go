package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/google/uuid"
)

// TestJWTService signs tokens with a fixed test secret. Routers under test
// must be built with the same service for tokens to verify.
func TestJWTService() *services.JWTService {
	return services.NewJWTService(
		"test-secret-key-for-testing-only",
		15*time.Minute,
		24*time.Hour,
	)
}

// GenerateTestToken returns an access token for a customer account.
func GenerateTestToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	return GenerateRoleToken(t, userID, email, models.GlobalRoleUser)
}

// GenerateRoleToken returns an access token carrying role.
func GenerateRoleToken(t *testing.T, userID uuid.UUID, email, role string) string {
	t.Helper()
	pair, err := TestJWTService().GenerateTokenPair(userID, email, role)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return pair.AccessToken
}

// TokenFor returns an access token matching the user's stored role.
func TokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	return GenerateRoleToken(t, u.ID, u.Email, u.GlobalRole)
}

// APIClient drives an http.Handler in-process. The zero token sends
// anonymous requests.
type APIClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func NewAPIClient(t *testing.T, handler http.Handler) *APIClient {
	return &APIClient{t: t, handler: handler}
}

// As returns a copy of the client that authenticates with token.
func (c *APIClient) As(token string) *APIClient {
	cp := *c
	cp.token = token
	return &cp
}

// Do sends body JSON-encoded unless it is nil or already a string.
func (c *APIClient) Do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			c.t.Fatalf("failed to marshal request body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *APIClient) Get(path string) *httptest.ResponseRecorder {
	return c.Do(http.MethodGet, path, nil)
}

func (c *APIClient) Post(path string, body interface{}) *httptest.ResponseRecorder {
	return c.Do(http.MethodPost, path, body)
}

func (c *APIClient) Patch(path string, body interface{}) *httptest.ResponseRecorder {
	return c.Do(http.MethodPatch, path, body)
}

func (c *APIClient) Delete(path string) *httptest.ResponseRecorder {
	return c.Do(http.MethodDelete, path, nil)
}

// RequireStatus stops the test when the response code differs, printing the
// body so handler error messages show up in the failure.
func RequireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d. Body: %s", want, rec.Code, rec.Body.String())
	}
}

// DecodeJSON decodes the response body into a T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to parse response JSON: %v. Body: %s", err, rec.Body.String())
	}
	return v
}

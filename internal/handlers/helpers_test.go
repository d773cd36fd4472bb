package handlers

import (
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email string) string {
	t.Helper()
	return generateRoleToken(t, jwtSvc, userID, email, models.GlobalRoleUser)
}

func generateRoleToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email, role string) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email, role)
	require.NoError(t, err)
	return pair.AccessToken
}

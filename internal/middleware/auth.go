package middleware

import (
	"strings"

	"github.com/dimitrije/signshop-api/internal/models"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.GlobalRole)

		c.Next()
	}
}

// RequireSuperAdmin must run after Auth.
func RequireSuperAdmin() drift.HandlerFunc {
	return func(c *drift.Context) {
		if GetUserRole(c) != models.GlobalRoleSuperAdmin {
			c.Forbidden("admin access required")
			return
		}
		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	return getString(c, UserEmailKey)
}

func GetUserRole(c *drift.Context) string {
	return getString(c, UserRoleKey)
}

func getString(c *drift.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the signed-in account as the storefront sees it. IsAdmin
// decides whether the admin console link is shown.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Provider    string    `json:"provider"`
	GlobalRole  string    `json:"global_role"`
	IsAdmin     bool      `json:"is_admin"`
	MemberSince time.Time `json:"member_since"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Account roles. Super admins run the shop: they curate products, work the
// quote inbox and subscribe to the admin event stream. Everyone else is a
// customer who can only save designs.
const (
	GlobalRoleSuperAdmin = "super_admin"
	GlobalRoleUser       = "user"
)

// MaxUserNameLength bounds the display name printed on quotes and emails.
const MaxUserNameLength = 100

var (
	ErrUserNameRequired = errors.New("name is required")
	ErrUserNameTooLong  = fmt.Errorf("name must be at most %d characters", MaxUserNameLength)
)

// NormalizeUserName trims a name a customer typed and checks it fits.
func NormalizeUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUserNameRequired
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		return "", ErrUserNameTooLong
	}
	return name, nil
}

// ClipUserName trims a provider-supplied name and cuts it to
// MaxUserNameLength runes. Provider profiles are never rejected for length.
func ClipUserName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxUserNameLength {
		return name
	}
	return strings.TrimSpace(string([]rune(name)[:MaxUserNameLength]))
}

// User is a signed-in shop account, linked to exactly one OAuth identity.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Provider   string    `json:"provider"`
	ProviderID string    `json:"-"`
	GlobalRole string    `json:"global_role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) IsSuperAdmin() bool {
	return u.GlobalRole == GlobalRoleSuperAdmin
}

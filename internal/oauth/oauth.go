package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownProvider  = errors.New("unsupported provider")
	ErrEmailNotVerified = errors.New("email address is not verified")
)

// UserInfo is the profile a provider returns after a successful code
// exchange. Shop accounts are keyed on (Provider, ID), never on Email.
type UserInfo struct {
	Email     string
	Name      string
	AvatarURL string
	ID        string
	Provider  string
}

// normalize trims provider noise and falls back to the mailbox name when the
// profile has no display name, so every account row has a usable name.
func (u *UserInfo) normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		u.Name, _, _ = strings.Cut(u.Email, "@")
	}
}

type Provider interface {
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
	Name() string
}

// Registry maps a provider's route name to the provider.
type Registry map[string]Provider

func NewRegistry(providers ...Provider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		r[p.Name()] = p
	}
	return r
}

func (r Registry) Lookup(name string) (Provider, error) {
	p, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// RandomToken returns 32 random bytes, URL-safe base64 encoded. It backs both
// the OAuth state parameter and the one-time code handed to the frontend.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

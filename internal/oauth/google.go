package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dimitrije/signshop-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

// GetConsentURL always shows the account chooser; shop staff commonly share
// a browser with a personal Google session.
func (p *GoogleProvider) GetConsentURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// ExchangeCode trades the authorization code for a token and fetches the
// profile. Accounts whose address Google has not verified are rejected
// with ErrEmailNotVerified.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*UserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: build profile request: %w", err)
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: fetch profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: profile endpoint returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("google: decode profile: %w", err)
	}
	if !profile.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	info := &UserInfo{
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.Picture,
		ID:        profile.ID,
		Provider:  p.Name(),
	}
	info.normalize()
	return info, nil
}

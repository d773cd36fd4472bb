package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dimitrije/signshop-api/internal/config"
	"github.com/dimitrije/signshop-api/internal/middleware"
	"github.com/dimitrije/signshop-api/internal/oauth"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const (
	stateTTL    = 10 * time.Minute
	authCodeTTL = 30 * time.Second
)

type AuthHandler struct {
	cfg          *config.Config
	providers    oauth.Registry
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	logger       *zap.Logger
	states       sync.Map
	authCodes    sync.Map
}

type stateData struct {
	expiresAt time.Time
}

type authCodeData struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	logger *zap.Logger,
) *AuthHandler {
	h := &AuthHandler{
		cfg:          cfg,
		providers:    oauth.NewRegistry(),
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
		logger:       logger,
	}

	if cfg.Google.ClientID != "" {
		h.providers = oauth.NewRegistry(oauth.NewGoogleProvider(cfg.Google))
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, sign-in is disabled")
	}

	return h
}

// StartCleanup drops expired OAuth states and one-time codes every minute
// until ctx is done.
func (h *AuthHandler) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.sweep(now)
		}
	}
}

func (h *AuthHandler) sweep(now time.Time) {
	h.states.Range(func(key, value interface{}) bool {
		if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
			h.states.Delete(key)
		}
		return true
	})
	h.authCodes.Range(func(key, value interface{}) bool {
		if acd, ok := value.(authCodeData); ok && now.After(acd.expiresAt) {
			h.authCodes.Delete(key)
		}
		return true
	})
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	provider := c.Param("provider")

	p, err := h.providers.Lookup(provider)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	state, err := oauth.RandomToken()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(stateTTL)})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.GetConsentURL(state),
	})
}

func (h *AuthHandler) Callback(c *drift.Context) {
	provider := c.Param("provider")

	p, err := h.providers.Lookup(provider)
	if err != nil {
		h.redirectWithError(c, oauth.ErrUnknownProvider.Error())
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.redirectWithError(c, "invalid or expired state")
		return
	}

	sdTyped, ok := sd.(stateData)
	if !ok || time.Now().After(sdTyped.expiresAt) {
		h.redirectWithError(c, "state expired")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	userInfo, err := p.ExchangeCode(ctx, code)
	if errors.Is(err, oauth.ErrEmailNotVerified) {
		h.redirectWithError(c, "email not verified")
		return
	}
	if err != nil {
		h.logger.Warn("oauth code exchange failed", zap.String("provider", provider), zap.Error(err))
		h.redirectWithError(c, "failed to exchange code")
		return
	}

	user, err := h.userService.FindOrCreateFromOAuth(ctx, userInfo)
	if err != nil {
		h.logger.Error("failed to create user from oauth profile", zap.String("provider", provider), zap.Error(err))
		h.redirectWithError(c, "failed to create user")
		return
	}

	authCode, err := oauth.RandomToken()
	if err != nil {
		h.redirectWithError(c, "failed to generate auth code")
		return
	}

	h.authCodes.Store(authCode, authCodeData{
		userID:    user.ID,
		expiresAt: time.Now().Add(authCodeTTL),
	})

	h.redirect(c, fmt.Sprintf("%s?code=%s", h.cfg.FrontendCallbackURL, url.QueryEscape(authCode)))
}

func (h *AuthHandler) ExchangeCode(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	acd, ok := h.authCodes.LoadAndDelete(req.Code)
	if !ok {
		c.Unauthorized("invalid or expired code")
		return
	}

	codeData, ok := acd.(authCodeData)
	if !ok || time.Now().After(codeData.expiresAt) {
		c.Unauthorized("code expired")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.GetByID(ctx, codeData.userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.GlobalRole)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	tokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

// RefreshToken trades a refresh token for a new pair. The role claim is read
// from the database so promotions take effect on the next refresh.
func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := c.Request.Context()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.GlobalRole)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	newTokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.RotateRefreshToken(ctx, user.ID, tokenHash, newTokenHash, expiresAt); err != nil {
		c.InternalServerError("failed to rotate refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		_ = h.tokenService.RevokeRefreshToken(c.Request.Context(), tokenHash)
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(c.Request.Context(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	h.redirect(c, fmt.Sprintf("%s?error=%s", h.cfg.FrontendCallbackURL, url.QueryEscape(errMsg)))
}

func (h *AuthHandler) redirect(c *drift.Context, location string) {
	http.Redirect(c.Response, c.Request, location, http.StatusFound)
	c.Abort()
}

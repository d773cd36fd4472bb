package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// Access and refresh tokens share a signing key, so each carries an audience
// naming its use and is only accepted for that use.
const (
	issuer          = "signshop-api"
	audienceAccess  = "signshop:access"
	audienceRefresh = "signshop:refresh"
)

// Claims is the access token payload. GlobalRole decides whether the holder
// may reach the admin console.
type Claims struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	GlobalRole string    `json:"global_role,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

func NewJWTService(secret string, accessExpiry, refreshExpiry time.Duration) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *JWTService) registered(userID uuid.UUID, audience string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func (s *JWTService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateTokenPair issues a short-lived access token carrying the shop role
// and a refresh token that only names the account. Every refresh token gets a
// fresh jti, so two pairs issued in the same second still hash differently.
func (s *JWTService) GenerateTokenPair(userID uuid.UUID, email, globalRole string) (*TokenPair, error) {
	now := time.Now()

	access, err := s.sign(Claims{
		UserID:           userID,
		Email:            email,
		GlobalRole:       globalRole,
		RegisteredClaims: s.registered(userID, audienceAccess, now, s.accessExpiry),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := s.registered(userID, audienceRefresh, now, s.refreshExpiry)
	refreshClaims.ID = uuid.NewString()
	refresh, err := s.sign(refreshClaims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpiry.Seconds()),
	}, nil
}

func (s *JWTService) parse(tokenString, audience string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	var claims Claims
	if err := s.parse(tokenString, audienceAccess, &claims); err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return &claims, nil
}

// ValidateRefreshToken checks the signature and lifetime and returns the
// account id. Whether the token is still stored is TokenService's concern.
func (s *JWTService) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	if err := s.parse(tokenString, audienceRefresh, &claims); err != nil {
		return uuid.Nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return userID, nil
}

func (s *JWTService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

// HashToken is the form refresh tokens are stored in.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

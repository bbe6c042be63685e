package services

import (
	"time"

	"playtube/config"
	"playtube/internal/domain/user"
	playtube_errors "playtube/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints the access and refresh tokens bound to a user
// identity. Both are HS256 JWTs signed with the same secret; the
// refresh token carries only the subject claim.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessExpiryMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
	}
}

type AccessClaims struct {
	UserID   string `json:"sub"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (i *TokenIssuer) GenerateAccessToken(u user.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) GenerateRefreshToken(u user.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, playtube_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, playtube_errors.ErrUnauthorized
		}
		return i.secret, nil
	})
	if err != nil {
		return AccessClaims{}, playtube_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, playtube_errors.ErrUnauthorized
	}

	return *claims, nil
}

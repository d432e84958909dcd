package service

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/config"
)

// TokenService issues and verifies the access/refresh token pair. Access and
// refresh tokens are signed with separate secrets so one leaking does not
// compromise the other.
type TokenService struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken signs a short-lived token carrying the user's identity.
func (s *TokenService) IssueAccessToken(userID uuid.UUID, userName, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID.String(),
		"userName": userName,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken signs a long-lived token carrying only the user id.
func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates an access token and returns the user id it
// identifies.
func (s *TokenService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns the user id it
// identifies.
func (s *TokenService) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.Authentication("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperr.Authentication("invalid or expired token")
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apperr.Authentication("invalid or expired token")
	}
	return id, nil
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/kashmiricraft/treasures-api/internal/config"
	"github.com/kashmiricraft/treasures-api/internal/observability"
	"github.com/kashmiricraft/treasures-api/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginResult struct {
	AccessToken string
	TokenType   string
}

// AuthService authenticates the single administrative account and issues
// access tokens for it. A plaintext ADMIN_PASSWORD is hashed once at
// construction so every verification path goes through argon2id.
type AuthService struct {
	username     string
	passwordHash string
	tokens       *security.JWTManager
	accessTTL    time.Duration
}

func NewAuthService(cfg *config.Config, tokens *security.JWTManager) (*AuthService, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		h, err := security.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = h
	}
	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		tokens:       tokens,
		accessTTL:    cfg.JWTAccessTTL,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK, err := security.VerifyPassword(s.passwordHash, password)
	if err != nil || !usernameOK || !passwordOK {
		observability.RecordAuthLogin(ctx, "failure")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.SignAccessToken(s.username, s.accessTTL)
	if err != nil {
		observability.RecordAuthLogin(ctx, "error")
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	observability.RecordAuthLogin(ctx, "success")
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"atelier/config"
	"atelier/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The studio has a single operator, so a session token carries no subject
// beyond the admin role itself.
type jwtService struct {
	secret string        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &jwtService{
		secret: cfg.Auth.Secret,
		ttl:    ttl,
	}, nil
}

// GenerateSessionToken creates a signed admin session token.
func (s *jwtService) GenerateSessionToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "admin",               // Subject (who the token is for)
		"iat":  now.Unix(),            // Issued At
		"exp":  now.Add(s.ttl).Unix(), // Expiration Time
		"type": "session",             // Type of token
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a session token string.
func (s *jwtService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
}

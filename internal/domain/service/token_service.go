// Package service defines interfaces for domain-level collaborators.
package service

import "github.com/golang-jwt/jwt/v5"

// TokenService defines the interface for generating and validating the admin
// session JWT issued after PIN verification. This abstracts the details of
// token creation from the use cases.
type TokenService interface {
	// GenerateSessionToken creates a new admin session token.
	GenerateSessionToken() (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*jwt.Token, error)
}

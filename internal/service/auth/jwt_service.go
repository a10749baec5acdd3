package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT embedding the user's public record.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, user domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Fails with ErrInvalidToken or ErrExpiredToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token: the principal it was issued
// for plus the registered claims.
type Claims struct {
	// User is the public record of the principal at issuance time.
	User domain.User `json:"user"`

	// UserID is the principal's identifier, taken from the subject claim.
	UserID uuid.UUID `json:"uid"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

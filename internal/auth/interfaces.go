package auth

import (
	"context"
	"time"
)

// TokenService defines the interface for session token creation and validation.
// PasetoService (PASETO v4.local) is the implementation.
type TokenService interface {
	CreateToken(identity Identity) (string, *TokenClaims, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// Denylist records session tokens revoked before their natural expiry.
// Only wired when server-side logout is enabled.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Notifier sends account notices. Delivery failures never fail the request.
type Notifier interface {
	SendPasswordChangedEmail(ctx context.Context, toEmail, name string) error
}

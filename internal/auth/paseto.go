package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity is the public snapshot of a user carried inside a session token
type Identity struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	UserName     string    `json:"userName"`
	EmailAddress string    `json:"emailAddress"`
}

// IdentityOf builds the token identity of u. The password hash is never included.
func IdentityOf(u *user.User) Identity {
	return Identity{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		EmailAddress: u.EmailAddress,
	}
}

// TokenClaims represents the claims stored in a PASETO token
type TokenClaims struct {
	Identity
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	duration     time.Duration
	now          func() time.Time
}

func NewPasetoService(symmetricKey []byte, duration time.Duration) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("token duration must be positive, got %s", duration)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{
		symmetricKey: key,
		duration:     duration,
		now:          time.Now,
	}, nil
}

// Duration returns the lifetime of issued tokens
func (s *PasetoService) Duration() time.Duration {
	return s.duration
}

// CreateToken generates a new PASETO v4.local token embedding the identity
func (s *PasetoService) CreateToken(identity Identity) (string, *TokenClaims, error) {
	// PASETO timestamps are RFC 3339 with second precision
	now := s.now().UTC().Truncate(time.Second)
	claims := &TokenClaims{
		Identity:  identity,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.duration),
	}

	token := paseto.NewToken()
	token.SetIssuedAt(claims.IssuedAt)
	token.SetExpiration(claims.ExpiresAt)
	token.SetString("jti", claims.TokenID)
	token.SetString("user_id", identity.ID.String())
	token.SetString("first_name", identity.FirstName)
	token.SetString("last_name", identity.LastName)
	token.SetString("user_name", identity.UserName)
	token.SetString("email_address", identity.EmailAddress)

	return token.V4Encrypt(s.symmetricKey, nil), claims, nil
}

// VerifyToken validates a PASETO v4.local token and returns the claims as issued.
// No lookup against the live user row happens here.
func (s *PasetoService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	// Expiry is checked below against the service clock
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !s.now().Before(expiresAt) {
		return nil, ErrExpiredToken
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims := &TokenClaims{IssuedAt: issuedAt, ExpiresAt: expiresAt}

	if claims.TokenID, err = token.GetString("jti"); err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := token.GetString("user_id")
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ID, err = uuid.Parse(userID); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.FirstName, err = token.GetString("first_name"); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.LastName, err = token.GetString("last_name"); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.UserName, err = token.GetString("user_name"); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.EmailAddress, err = token.GetString("email_address"); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

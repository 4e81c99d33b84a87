package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("Wrong login credentials")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrDuplicateEmail     = errors.New("email address already registered")
	ErrDuplicateUserName  = errors.New("user name already taken")
)

// RegisterInput holds the registration form
type RegisterInput struct {
	FirstName    string
	LastName     string
	UserName     string
	EmailAddress string
	Password     string
}

// Service handles authentication business logic
type Service struct {
	userRepo  *user.Repository
	tokens    TokenService
	hasher    *PasswordHasher
	strength  *StrengthChecker
	denylist  Denylist
	notifier  Notifier
	logger    *logging.Logger
	dummyHash string
}

// NewService wires the auth service. denylist and notifier are optional.
func NewService(
	userRepo *user.Repository,
	tokens TokenService,
	hasher *PasswordHasher,
	strength *StrengthChecker,
	denylist Denylist,
	notifier Notifier,
	logger *logging.Logger,
) *Service {
	// Unknown identifiers are verified against this hash so both login
	// failure paths cost the same.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", "error", err)
	}

	return &Service{
		userRepo:  userRepo,
		tokens:    tokens,
		hasher:    hasher,
		strength:  strength,
		denylist:  denylist,
		notifier:  notifier,
		logger:    logger,
		dummyHash: dummyHash,
	}
}

// Register creates a new user account. No session is issued; the caller logs in separately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.UserName = strings.TrimSpace(in.UserName)
	in.EmailAddress = strings.TrimSpace(in.EmailAddress)

	if err := apperror.Require(
		apperror.Field{Name: "firstName", Value: in.FirstName},
		apperror.Field{Name: "lastName", Value: in.LastName},
		apperror.Field{Name: "userName", Value: in.UserName},
		apperror.Field{Name: "emailAddress", Value: in.EmailAddress},
		apperror.Field{Name: "password", Value: in.Password},
	); err != nil {
		return nil, err
	}

	if err := ValidateEmailAddress(in.EmailAddress); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailInUse(ctx, in.EmailAddress)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	taken, err = s.userRepo.UserNameInUse(ctx, in.UserName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUserName
	}

	if err := s.strength.Check(in.Password, in.FirstName, in.LastName, in.UserName, in.EmailAddress); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The pre-checks above leave a race window; the unique constraints close it
	// and surface as user.ErrDuplicateIdentity.
	newUser, err := s.userRepo.Create(ctx, user.NewUser{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		UserName:     in.UserName,
		EmailAddress: in.EmailAddress,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, err
	}

	return newUser, nil
}

// maxEmailLength is the RFC 5321 limit on a forward path
const maxEmailLength = 254

// ValidateEmailAddress accepts a bare address ("ada@example.com") only.
// Display names, angle brackets and over-long addresses are ErrInvalidEmailFormat.
func ValidateEmailAddress(address string) error {
	if len(address) > maxEmailLength {
		return ErrInvalidEmailFormat
	}
	if addr, err := mail.ParseAddress(address); err != nil || addr.Address != address {
		return ErrInvalidEmailFormat
	}
	return nil
}

// Login authenticates by email address or user name and issues a session token
func (s *Service) Login(ctx context.Context, identifier, password string) (string, *TokenClaims, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	existingUser, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(existingUser.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.CreateToken(IdentityOf(existingUser))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return token, claims, nil
}

// Logout revokes the session server-side when a denylist is configured.
// Without one the token stays valid until it expires.
func (s *Service) Logout(ctx context.Context, claims *TokenClaims) error {
	if s.denylist == nil || claims == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// UpdatePassword replaces the caller's password after checking the current one.
// Existing sessions are not re-issued.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := apperror.Require(
		apperror.Field{Name: "currentPassword", Value: currentPassword},
		apperror.Field{Name: "newPassword", Value: newPassword},
	); err != nil {
		return err
	}

	existingUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(existingUser.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	if err := s.strength.Check(newPassword, existingUser.FirstName, existingUser.LastName, existingUser.UserName, existingUser.EmailAddress); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	if s.notifier != nil {
		// Send notice in a goroutine (non-blocking)
		go func(email, name string) {
			if err := s.notifier.SendPasswordChangedEmail(context.Background(), email, name); err != nil {
				s.logger.Warn("failed to send password changed email", "email", email, "error", err)
			}
		}(existingUser.EmailAddress, existingUser.FirstName)
	}

	return nil
}

package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

// Notifier sends account notices. Delivery failures never fail the request.
type Notifier interface {
	SendAccountDeletedEmail(ctx context.Context, toEmail, name string) error
	SendAccountErasedEmail(ctx context.Context, toEmail, name string) error
}

// Service implements the profile lifecycle of the acting user
type Service struct {
	users    *user.Repository
	blogs    *blog.Service
	notifier Notifier
	logger   *logging.Logger
}

func NewService(users *user.Repository, blogs *blog.Service, notifier Notifier, logger *logging.Logger) *Service {
	return &Service{users: users, blogs: blogs, notifier: notifier, logger: logger}
}

// Get returns the user's public profile
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Update applies a partial profile update. Provided values must not be blank.
// Uniqueness is left to the storage constraints, surfacing as user.ErrDuplicateIdentity.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, upd user.ProfileUpdate) (*user.User, error) {
	upd.FirstName = trimPtr(upd.FirstName)
	upd.LastName = trimPtr(upd.LastName)
	upd.UserName = trimPtr(upd.UserName)
	upd.EmailAddress = trimPtr(upd.EmailAddress)

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"firstName", upd.FirstName},
		{"lastName", upd.LastName},
		{"userName", upd.UserName},
		{"emailAddress", upd.EmailAddress},
	} {
		if err := apperror.RequireIfSet(f.name, f.value); err != nil {
			return nil, err
		}
	}

	if upd.EmailAddress != nil {
		if err := auth.ValidateEmailAddress(*upd.EmailAddress); err != nil {
			return nil, err
		}
	}

	if upd.Empty() {
		return s.users.GetByID(ctx, userID)
	}

	return s.users.UpdateProfile(ctx, userID, upd)
}

// SoftDelete closes the account. The user's blogs are left as they are.
func (s *Service) SoftDelete(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user soft deleted", "user_id", userID)
	if s.notifier != nil {
		s.notify(u, "account deleted", s.notifier.SendAccountDeletedEmail)
	}
	return nil
}

// PermanentDelete erases the caller's account and all of its blogs.
// Only the caller's own id is accepted; any other id is reported as not found.
func (s *Service) PermanentDelete(ctx context.Context, callerID, targetID uuid.UUID) error {
	if callerID != targetID {
		return user.ErrNotFound
	}

	// Soft-deleted accounts may still be erased; they get no notice.
	u, err := s.users.GetByID(ctx, targetID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return err
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("user permanently deleted", "user_id", targetID)
	if u != nil && s.notifier != nil {
		s.notify(u, "account erased", s.notifier.SendAccountErasedEmail)
	}
	return nil
}

// Blogs returns the user's active blogs
func (s *Service) Blogs(ctx context.Context, userID uuid.UUID) ([]blog.Blog, error) {
	return s.blogs.List(ctx, userID)
}

type sendFunc func(ctx context.Context, toEmail, name string) error

func (s *Service) notify(u *user.User, notice string, send sendFunc) {
	// Send notice in a goroutine (non-blocking)
	go func(email, name string) {
		if err := send(context.Background(), email, name); err != nil {
			s.logger.Warn("failed to send "+notice+" email", "email", email, "error", err)
		}
	}(u.EmailAddress, u.FirstName)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

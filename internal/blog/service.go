package blog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/logging"
)

var ErrInvalidImageURL = errors.New("featuredImageUrl must be an absolute http or https URL")

// Service implements the blog lifecycle: create, read, update, trash, recover
// and permanent delete, always on behalf of the owning user.
type Service struct {
	repo   *Repository
	logger *logging.Logger
}

func NewService(repo *Repository, logger *logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create validates and stores a new blog for ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Blog, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Synopsis = strings.TrimSpace(in.Synopsis)
	in.FeaturedImageURL = normalizeImageURL(in.FeaturedImageURL)

	if err := apperror.Require(
		apperror.Field{Name: "title", Value: in.Title},
		apperror.Field{Name: "synopsis", Value: in.Synopsis},
		apperror.Field{Name: "content", Value: in.Content},
	); err != nil {
		return nil, err
	}
	if in.FeaturedImageURL != nil {
		if err := validateImageURL(*in.FeaturedImageURL); err != nil {
			return nil, err
		}
	}

	b, err := s.repo.Create(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("blog created", "blog_id", b.ID, "user_id", ownerID)
	return b, nil
}

// List returns the owner's active blogs
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Blog, error) {
	return s.repo.ListByOwner(ctx, ownerID, false)
}

// ListTrash returns the owner's trashed blogs
func (s *Service) ListTrash(ctx context.Context, ownerID uuid.UUID) ([]Blog, error) {
	return s.repo.ListByOwner(ctx, ownerID, true)
}

// Get returns one active blog of the owner
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Blog, error) {
	return s.repo.GetActive(ctx, ownerID, id)
}

// Update applies a partial update. Provided title, synopsis and content must not be blank;
// an empty featuredImageUrl clears the image.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*Blog, error) {
	in.Title = trimPtr(in.Title)
	in.Synopsis = trimPtr(in.Synopsis)

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", in.Title},
		{"synopsis", in.Synopsis},
		{"content", in.Content},
	} {
		if err := apperror.RequireIfSet(f.name, f.value); err != nil {
			return nil, err
		}
	}

	if in.FeaturedImageURL != nil {
		trimmed := strings.TrimSpace(*in.FeaturedImageURL)
		in.FeaturedImageURL = &trimmed
		if trimmed != "" {
			if err := validateImageURL(trimmed); err != nil {
				return nil, err
			}
		}
	}

	return s.repo.Update(ctx, ownerID, id, in)
}

// Trash moves an owned blog to the trash
func (s *Service) Trash(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SetDeleted(ctx, ownerID, id, true); err != nil {
		return err
	}
	s.logger.Debug("blog trashed", "blog_id", id, "user_id", ownerID)
	return nil
}

// Recover restores an owned blog from the trash
func (s *Service) Recover(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SetDeleted(ctx, ownerID, id, false); err != nil {
		return err
	}
	s.logger.Debug("blog recovered", "blog_id", id, "user_id", ownerID)
	return nil
}

// PermanentDelete erases an owned blog whether or not it is in the trash
func (s *Service) PermanentDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info("blog permanently deleted", "blog_id", id, "user_id", ownerID)
	return nil
}

func validateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidImageURL
	}
	return nil
}

// normalizeImageURL trims the URL and treats an empty value as absent
func normalizeImageURL(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

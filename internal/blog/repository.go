package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-blog-api/internal/database"
)

var ErrNotFound = errors.New("blog not found")

// Repository handles blog persistence. Every query is scoped to the owning user.
type Repository struct {
	db  *bun.DB
	now func() time.Time
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts a new, active blog owned by ownerID
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Blog, error) {
	now := r.now()
	dbBlog := &database.Blog{
		ID:               uuid.New(),
		UserID:           ownerID,
		Title:            in.Title,
		Synopsis:         in.Synopsis,
		Content:          in.Content,
		FeaturedImageURL: in.FeaturedImageURL,
		IsDeleted:        false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := r.db.NewInsert().Model(dbBlog).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	return mapDBBlogToModel(dbBlog), nil
}

// ListByOwner returns the owner's blogs in the given trash state, newest first
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, deleted bool) ([]Blog, error) {
	var rows []database.Blog
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", ownerID).
		Where("is_deleted = ?", deleted).
		Order("created_at DESC", "id DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	blogs := make([]Blog, 0, len(rows))
	for i := range rows {
		blogs = append(blogs, *mapDBBlogToModel(&rows[i]))
	}

	return blogs, nil
}

// GetActive retrieves a non-deleted blog owned by ownerID
func (r *Repository) GetActive(ctx context.Context, ownerID, id uuid.UUID) (*Blog, error) {
	dbBlog := new(database.Blog)
	err := r.db.NewSelect().
		Model(dbBlog).
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Where("is_deleted = ?", false).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return mapDBBlogToModel(dbBlog), nil
}

// Update applies a partial update to a non-deleted blog owned by ownerID
func (r *Repository) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*Blog, error) {
	q := r.db.NewUpdate().
		Model((*database.Blog)(nil)).
		Set("updated_at = ?", r.now())

	if in.Title != nil {
		q = q.Set("title = ?", *in.Title)
	}
	if in.Synopsis != nil {
		q = q.Set("synopsis = ?", *in.Synopsis)
	}
	if in.Content != nil {
		q = q.Set("content = ?", *in.Content)
	}
	if in.FeaturedImageURL != nil {
		if *in.FeaturedImageURL == "" {
			q = q.Set("featured_image_url = NULL")
		} else {
			q = q.Set("featured_image_url = ?", *in.FeaturedImageURL)
		}
	}

	result, err := q.
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Where("is_deleted = ?", false).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	if err := checkAffected(result); err != nil {
		return nil, err
	}

	return r.GetActive(ctx, ownerID, id)
}

// SetDeleted moves an owned blog in or out of the trash. Setting the current
// state again is not an error. updated_at is not touched.
func (r *Repository) SetDeleted(ctx context.Context, ownerID, id uuid.UUID, deleted bool) error {
	result, err := r.db.NewUpdate().
		Model((*database.Blog)(nil)).
		Set("is_deleted = ?", deleted).
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set blog deleted=%t: %w", deleted, err)
	}

	return checkAffected(result)
}

// Delete erases an owned blog regardless of its trash state
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Blog)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func mapDBBlogToModel(dbb *database.Blog) *Blog {
	return &Blog{
		ID:               dbb.ID,
		UserID:           dbb.UserID,
		Title:            dbb.Title,
		Synopsis:         dbb.Synopsis,
		Content:          dbb.Content,
		FeaturedImageURL: dbb.FeaturedImageURL,
		IsDeleted:        dbb.IsDeleted,
		CreatedAt:        dbb.CreatedAt,
		UpdatedAt:        dbb.UpdatedAt,
	}
}

package user

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

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("user name or email address already in use")
)

// Repository handles user data persistence
type Repository struct {
	db  *bun.DB
	now func() time.Time
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts a new, active user into the database
func (r *Repository) Create(ctx context.Context, nu NewUser) (*User, error) {
	now := r.now()
	dbUser := &database.User{
		ID:           uuid.New(),
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		UserName:     nu.UserName,
		EmailAddress: nu.EmailAddress,
		PasswordHash: nu.PasswordHash,
		IsDeleted:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Exec(ctx)

	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return nil, fmt.Errorf("%w (%s)", ErrDuplicateIdentity, constraint)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// EmailInUse reports whether an active user already owns the email address
func (r *Repository) EmailInUse(ctx context.Context, email string) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("email_address = ?", email).
		Where("is_deleted = ?", false).
		Count(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return count > 0, nil
}

// UserNameInUse reports whether an active user already owns the user name
func (r *Repository) UserNameInUse(ctx context.Context, userName string) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("user_name = ?", userName).
		Where("is_deleted = ?", false).
		Count(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to check user name: %w", err)
	}

	return count > 0, nil
}

// GetByIdentifier retrieves an active user whose email address or user name equals identifier
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("email_address = ?", identifier).WhereOr("user_name = ?", identifier)
		}).
		Where("is_deleted = ?", false).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves an active user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Where("is_deleted = ?", false).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdateProfile applies a partial update to an active user and returns the result
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*User, error) {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("updated_at = ?", r.now())

	if upd.FirstName != nil {
		q = q.Set("first_name = ?", *upd.FirstName)
	}
	if upd.LastName != nil {
		q = q.Set("last_name = ?", *upd.LastName)
	}
	if upd.UserName != nil {
		q = q.Set("user_name = ?", *upd.UserName)
	}
	if upd.EmailAddress != nil {
		q = q.Set("email_address = ?", *upd.EmailAddress)
	}

	result, err := q.
		Where("id = ?", id).
		Where("is_deleted = ?", false).
		Exec(ctx)

	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return nil, fmt.Errorf("%w (%s)", ErrDuplicateIdentity, constraint)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := checkAffected(result); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// UpdatePassword updates an active user's password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", r.now()).
		Where("id = ?", userID).
		Where("is_deleted = ?", false).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return checkAffected(result)
}

// SoftDelete flags the user as deleted. The row and the user's blogs are kept.
func (r *Repository) SoftDelete(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("is_deleted = ?", true).
		Set("updated_at = ?", r.now()).
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}

	return checkAffected(result)
}

// Delete permanently removes the user row and every blog it owns
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*database.Blog)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete user blogs: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*database.User)(nil)).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		return checkAffected(result)
	})
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

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		FirstName:    dbu.FirstName,
		LastName:     dbu.LastName,
		UserName:     dbu.UserName,
		EmailAddress: dbu.EmailAddress,
		PasswordHash: dbu.PasswordHash,
		IsDeleted:    dbu.IsDeleted,
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}

package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName    string    `bun:"first_name,notnull"`
	LastName     string    `bun:"last_name,notnull"`
	UserName     string    `bun:"user_name,notnull,unique"`
	EmailAddress string    `bun:"email_address,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	IsDeleted    bool      `bun:"is_deleted,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

// Blog is the blogs table row
type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:b"`

	ID               uuid.UUID `bun:"id,pk,type:uuid"`
	UserID           uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Title            string    `bun:"title,notnull"`
	Synopsis         string    `bun:"synopsis,notnull"`
	Content          string    `bun:"content,notnull"`
	FeaturedImageURL *string   `bun:"featured_image_url"`
	IsDeleted        bool      `bun:"is_deleted,notnull"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

package blog

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	Title            string    `json:"title"`
	Synopsis         string    `json:"synopsis"`
	Content          string    `json:"content"`
	FeaturedImageURL *string   `json:"featuredImageUrl,omitempty"`
	IsDeleted        bool      `json:"isDeleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateInput holds the fields of a new blog
type CreateInput struct {
	Title            string
	Synopsis         string
	Content          string
	FeaturedImageURL *string
}

// UpdateInput carries a partial update; nil fields keep their prior values
type UpdateInput struct {
	Title            *string
	Synopsis         *string
	Content          *string
	FeaturedImageURL *string
}

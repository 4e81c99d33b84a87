package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	UserName     string    `json:"userName"`
	EmailAddress string    `json:"emailAddress"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	IsDeleted    bool      `json:"isDeleted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser holds the fields of a user about to be registered
type NewUser struct {
	FirstName    string
	LastName     string
	UserName     string
	EmailAddress string
	PasswordHash string
}

// ProfileUpdate carries a partial profile update; nil fields are left unchanged
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	UserName     *string
	EmailAddress *string
}

// Empty reports whether the update changes nothing
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.UserName == nil && u.EmailAddress == nil
}

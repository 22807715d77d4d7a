package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Auth provider tags stored on a user row.
const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

// User represents a stored user account.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash []byte
	AuthProvider string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Summary returns the caller-visible projection of a user, with no
// authentication material.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		AuthProvider: u.AuthProvider,
	}
}

// UserSummary is the identity payload returned to clients.
type UserSummary struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AuthProvider string    `json:"auth_provider"`
}

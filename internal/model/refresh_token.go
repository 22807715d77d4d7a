package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists opaque refresh tokens. A deleted value is
// permanently invalid; there are no tombstones.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByValue(ctx context.Context, value string) (RefreshToken, error)
	DeleteByValue(ctx context.Context, value string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RefreshToken is a server-side record of an opaque refresh credential.
// The value itself is the lookup key.
type RefreshToken struct {
	Value     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given time.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

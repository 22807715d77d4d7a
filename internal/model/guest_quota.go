package model

import (
	"context"
	"time"
)

// GuestQuotaStore persists per-guest usage counters. GetOrInit applies
// passive expiry: a row whose reset time has passed is reset (count 0,
// fresh window) and persisted before being returned, so callers never
// observe a stale counter. Increment is atomic with respect to concurrent
// increments for the same identifier.
type GuestQuotaStore interface {
	GetOrInit(ctx context.Context, identifier string, window time.Duration) (GuestQuota, error)
	Increment(ctx context.Context, identifier string) (int, error)
	Reset(ctx context.Context, identifier string, resetAt time.Time) error
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// GuestQuota tracks metered usage for one guest identifier.
type GuestQuota struct {
	Identifier string
	Count      int
	ResetAt    time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// WindowElapsed reports whether the quota window has rolled over.
func (q GuestQuota) WindowElapsed(now time.Time) bool {
	return !now.Before(q.ResetAt)
}

// GuestStatus is the result of a quota admission check.
type GuestStatus struct {
	Admitted  bool      `json:"has_tries_left"`
	Used      int       `json:"tries_used"`
	Remaining int       `json:"tries_left"`
	Limit     int       `json:"max_tries"`
	ResetAt   time.Time `json:"resets_at"`
}

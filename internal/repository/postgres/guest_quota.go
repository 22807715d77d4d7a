package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.GuestQuotaStore = (*GuestQuotaRepository)(nil)

// GuestQuotaRepository stores per-guest usage counters keyed by the
// guest identifier. GetOrInit and Increment are single statements, so
// the database sequences concurrent writers; the gate's advisory lock
// is only needed for stores without that property.
type GuestQuotaRepository struct {
	db *Connection
}

func NewGuestQuotaRepository(db *Connection) *GuestQuotaRepository {
	return &GuestQuotaRepository{db: db}
}

// GetOrInit returns the row for an identifier, creating it with a zero
// counter on first sight. A row whose window has elapsed is reset in the
// same statement, so the persisted state is already trustworthy when it
// comes back.
func (r *GuestQuotaRepository) GetOrInit(ctx context.Context, identifier string, window time.Duration) (model.GuestQuota, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO guest_usage (identifier, summaries_count, reset_at, created_at)
        VALUES ($1, 0, $2, NOW())
        ON CONFLICT (identifier) DO UPDATE SET
            summaries_count = CASE WHEN guest_usage.reset_at <= NOW() THEN 0 ELSE guest_usage.summaries_count END,
            reset_at        = CASE WHEN guest_usage.reset_at <= NOW() THEN $2 ELSE guest_usage.reset_at END,
            last_used_at    = CASE WHEN guest_usage.reset_at <= NOW() THEN NULL ELSE guest_usage.last_used_at END
        RETURNING identifier, summaries_count, reset_at, last_used_at, created_at
    `

	resetAt := time.Now().Add(window)

	var quota model.GuestQuota
	err := r.db.QueryRow(ctx, query, identifier, resetAt).Scan(
		&quota.Identifier, &quota.Count, &quota.ResetAt, &quota.LastUsedAt, &quota.CreatedAt,
	)
	if err != nil {
		return model.GuestQuota{}, wrapErr("get or init guest usage", err)
	}
	return quota, nil
}

// Increment bumps the counter by one and returns the new value. The
// update is a single atomic statement; two racing increments can never
// both read the same old count.
func (r *GuestQuotaRepository) Increment(ctx context.Context, identifier string) (int, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        UPDATE guest_usage
        SET summaries_count = summaries_count + 1, last_used_at = NOW()
        WHERE identifier = $1
        RETURNING summaries_count
    `

	var count int
	err := r.db.QueryRow(ctx, query, identifier).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, wrapErr("increment guest usage", err)
	}
	return count, nil
}

func (r *GuestQuotaRepository) Reset(ctx context.Context, identifier string, resetAt time.Time) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        UPDATE guest_usage
        SET summaries_count = 0, reset_at = $2, last_used_at = NULL
        WHERE identifier = $1
    `

	if _, err := r.db.Exec(ctx, query, identifier, resetAt); err != nil {
		return wrapErr("reset guest usage", err)
	}
	return nil
}

// DeleteExpired drops rows whose window elapsed before the cutoff. Used
// by the maintenance sweep; active guests get re-created lazily.
func (r *GuestQuotaRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM guest_usage WHERE reset_at <= $1`

	tag, err := r.db.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, wrapErr("delete expired guest usage", err)
	}
	return tag.RowsAffected(), nil
}

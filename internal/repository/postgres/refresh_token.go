package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository stores opaque refresh tokens keyed by value.
// Revocation is a hard delete; once a row is gone the value can never
// verify again, which is what makes logout durable.
type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO refresh_tokens (token, user_id, expires_at, created_at)
        VALUES ($1, $2, $3, NOW())
    `

	_, err := r.db.Exec(ctx, query, token.Value, token.UserID, token.ExpiresAt)
	if err != nil {
		return wrapErr("create refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByValue(ctx context.Context, value string) (model.RefreshToken, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        SELECT token, user_id, expires_at, created_at
        FROM refresh_tokens WHERE token = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, value).Scan(
		&rt.Value, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, wrapErr("get refresh token", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) DeleteByValue(ctx context.Context, value string) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM refresh_tokens WHERE token = $1`

	if _, err := r.db.Exec(ctx, query, value); err != nil {
		return wrapErr("delete refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM refresh_tokens WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return wrapErr("delete refresh tokens by user", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM refresh_tokens WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, wrapErr("delete expired refresh tokens", err)
	}
	return tag.RowsAffected(), nil
}

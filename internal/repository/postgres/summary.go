package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.SummaryStore = (*SummaryRepository)(nil)

type SummaryRepository struct {
	db *Connection
}

func NewSummaryRepository(db *Connection) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Create(ctx context.Context, summary model.Summary) (model.Summary, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO summaries (id, user_id, video_url, title, content, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, user_id, video_url, title, content, created_at
    `

	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}

	var created model.Summary
	err := r.db.QueryRow(ctx, query,
		summary.ID, summary.UserID, summary.VideoURL, summary.Title, summary.Content,
	).Scan(
		&created.ID, &created.UserID, &created.VideoURL, &created.Title, &created.Content, &created.CreatedAt,
	)
	if err != nil {
		return model.Summary{}, wrapErr("create summary", err)
	}
	return created, nil
}

func (r *SummaryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Summary, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        SELECT id, user_id, video_url, title, content, created_at
        FROM summaries WHERE id = $1
    `

	var summary model.Summary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&summary.ID, &summary.UserID, &summary.VideoURL, &summary.Title, &summary.Content, &summary.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Summary{}, model.ErrNotFound
		}
		return model.Summary{}, wrapErr("get summary by id", err)
	}
	return summary, nil
}

func (r *SummaryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Summary, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        SELECT id, user_id, video_url, title, content, created_at
        FROM summaries WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, wrapErr("list summaries by user", err)
	}
	defer rows.Close()

	var summaries []model.Summary
	for rows.Next() {
		var summary model.Summary
		if err := rows.Scan(
			&summary.ID, &summary.UserID, &summary.VideoURL, &summary.Title, &summary.Content, &summary.CreatedAt,
		); err != nil {
			return nil, wrapErr("scan summary", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate summaries", err)
	}

	return summaries, nil
}

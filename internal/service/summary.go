package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
)

// Summary owns the metered action: invoking the downstream summarization
// engine and, for authenticated users, persisting the result.
type Summary struct {
	engine    model.Summarizer
	summaries model.SummaryStore
	quota     *Quota
	logger    *logger.Logger
}

func NewSummary(engine model.Summarizer, summaries model.SummaryStore, quota *Quota, logger *logger.Logger) *Summary {
	return &Summary{engine: engine, summaries: summaries, quota: quota, logger: logger}
}

// SummarizeForUser runs the engine for an authenticated user and stores
// the result under the account. No quota applies.
func (s *Summary) SummarizeForUser(ctx context.Context, userID uuid.UUID, videoURL string) (model.Summary, error) {
	result, err := s.engine.Summarize(ctx, videoURL)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summarize: %w", err)
	}

	summary, err := s.summaries.Create(ctx, model.Summary{
		ID:        uuid.New(),
		UserID:    &userID,
		VideoURL:  videoURL,
		Title:     result.Title,
		Content:   result.Content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// The engine already produced the summary; losing the row is
		// not worth failing the request over.
		s.logger.Error("failed to persist summary", "user_id", userID, "error", err.Error())
		summary = model.Summary{
			ID:        uuid.New(),
			UserID:    &userID,
			VideoURL:  videoURL,
			Title:     result.Title,
			Content:   result.Content,
			CreatedAt: time.Now(),
		}
	}

	return summary, nil
}

// SummarizeForGuest runs the engine for an already-admitted guest and
// records the use strictly after the engine succeeds. The caller is
// responsible for the admission check; a failed engine call releases the
// admission so the guest keeps the try.
func (s *Summary) SummarizeForGuest(ctx context.Context, identifier string, videoURL string) (model.Summary, error) {
	result, err := s.engine.Summarize(ctx, videoURL)
	if err != nil {
		s.quota.ReleaseAdmission(identifier)
		return model.Summary{}, fmt.Errorf("summarize: %w", err)
	}

	if err := s.quota.RecordUsage(ctx, identifier); err != nil {
		s.logger.Error("failed to record guest usage", "identifier", identifier, "error", err.Error())
	}

	return model.Summary{
		ID:        uuid.New(),
		VideoURL:  videoURL,
		Title:     result.Title,
		Content:   result.Content,
		CreatedAt: time.Now(),
	}, nil
}

// History returns the user's stored summaries, newest first.
func (s *Summary) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.Summary, error) {
	summaries, err := s.summaries.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return summaries, nil
}

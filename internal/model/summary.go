package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SummaryStore persists generated summaries for authenticated users.
type SummaryStore interface {
	Create(ctx context.Context, summary Summary) (Summary, error)
	GetByID(ctx context.Context, id uuid.UUID) (Summary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Summary, error)
}

// Summary is a stored summarization result. UserID is nil for guest
// requests, which are metered but not persisted under an account.
type Summary struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	VideoURL  string
	Title     string
	Content   string
	CreatedAt time.Time
}

// Summarizer invokes the downstream summarization engine. The engine is
// opaque; any non-nil error means the metered action did not happen.
type Summarizer interface {
	Summarize(ctx context.Context, videoURL string) (SummaryResult, error)
}

// SummaryResult is the engine's response for one video.
type SummaryResult struct {
	Title   string
	Content string
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.SummaryStore = (*SummaryStore)(nil)

type SummaryStore struct {
	mu        sync.RWMutex
	summaries map[uuid.UUID]model.Summary
}

func NewSummaryStore() *SummaryStore {
	return &SummaryStore{summaries: make(map[uuid.UUID]model.Summary)}
}

func (s *SummaryStore) Create(_ context.Context, summary model.Summary) (model.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}
	s.summaries[summary.ID] = summary
	return summary, nil
}

func (s *SummaryStore) GetByID(_ context.Context, id uuid.UUID) (model.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[id]
	if !ok {
		return model.Summary{}, model.ErrNotFound
	}
	return summary, nil
}

func (s *SummaryStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]model.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Summary
	for _, summary := range s.summaries {
		if summary.UserID != nil && *summary.UserID == userID {
			out = append(out, summary)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

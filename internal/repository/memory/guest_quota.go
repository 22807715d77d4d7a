package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.GuestQuotaStore = (*GuestQuotaStore)(nil)

type GuestQuotaStore struct {
	mu     sync.Mutex
	quotas map[string]model.GuestQuota
	now    func() time.Time
}

func NewGuestQuotaStore() *GuestQuotaStore {
	return &GuestQuotaStore{
		quotas: make(map[string]model.GuestQuota),
		now:    time.Now,
	}
}

// SetClock overrides the store's clock. Tests use it to roll the quota
// window forward without sleeping.
func (s *GuestQuotaStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *GuestQuotaStore) GetOrInit(_ context.Context, identifier string, window time.Duration) (model.GuestQuota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	quota, ok := s.quotas[identifier]
	if !ok || quota.WindowElapsed(now) {
		quota = model.GuestQuota{
			Identifier: identifier,
			Count:      0,
			ResetAt:    now.Add(window),
			CreatedAt:  now,
		}
		s.quotas[identifier] = quota
	}
	return quota, nil
}

func (s *GuestQuotaStore) Increment(_ context.Context, identifier string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quota, ok := s.quotas[identifier]
	if !ok {
		return 0, model.ErrNotFound
	}
	now := s.now()
	quota.Count++
	quota.LastUsedAt = &now
	s.quotas[identifier] = quota
	return quota.Count, nil
}

func (s *GuestQuotaStore) Reset(_ context.Context, identifier string, resetAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quota, ok := s.quotas[identifier]
	if !ok {
		return model.ErrNotFound
	}
	quota.Count = 0
	quota.ResetAt = resetAt
	quota.LastUsedAt = nil
	s.quotas[identifier] = quota
	return nil
}

func (s *GuestQuotaStore) DeleteExpired(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for identifier, quota := range s.quotas {
		if quota.ResetAt.Before(olderThan) || quota.ResetAt.Equal(olderThan) {
			delete(s.quotas, identifier)
			n++
		}
	}
	return n, nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenStore)(nil)

type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]model.RefreshToken)}
}

func (s *RefreshTokenStore) Create(_ context.Context, token model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token.Value]; ok {
		return model.ErrConflict
	}
	s.tokens[token.Value] = token
	return nil
}

func (s *RefreshTokenStore) GetByValue(_ context.Context, value string) (model.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.tokens[value]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return rt, nil
}

func (s *RefreshTokenStore) DeleteByValue(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, value)
	return nil
}

func (s *RefreshTokenStore) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, rt := range s.tokens {
		if rt.UserID == userID {
			delete(s.tokens, value)
		}
	}
	return nil
}

func (s *RefreshTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for value, rt := range s.tokens {
		if rt.Expired(now) {
			delete(s.tokens, value)
			n++
		}
	}
	return n, nil
}

// Package memory provides in-process store implementations. They back
// unit tests and the dev mode where no database is available; semantics
// match the postgres repositories, including atomic quota increments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.DeletedAt != nil {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) GetByGoogleID(_ context.Context, googleID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.GoogleID != nil && *u.GoogleID == googleID && u.DeletedAt == nil {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return model.User{}, model.ErrConflict
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) Update(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok || existing.DeletedAt != nil {
		return model.User{}, model.ErrNotFound
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

// Delete marks a user deleted. Used by tests covering tokens that
// outlive their account.
func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	s.users[id] = u
	return nil
}

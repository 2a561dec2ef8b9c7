// Package memory provides an in-memory UserStore. It is the default backend
// for development and the backing store used throughout the test suite.
package memory

import (
	"context"
	"sync"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

// Store is a mutex-guarded map from username to user record. Insert performs
// the check and the write under one lock, so concurrent inserts of the same
// new username cannot both succeed.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func New() *Store {
	return &Store{users: make(map[string]domain.User)}
}

func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) Insert(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *Store) All(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

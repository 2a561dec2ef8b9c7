// Package jsonfile provides a UserStore persisted as a flat JSON map, keyed
// by username. The on-disk layout matches the legacy users.json format, where
// the hash field is named "password":
//
//	{"alice": {"username": "alice", "full_name": "...", "password": "$2b$...", "role": "user"}}
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

type record struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
}

// Store keeps the full user map in memory and rewrites the file on every
// insert. All mutation happens under one lock, which also gives Insert its
// atomic check-and-insert semantics.
type Store struct {
	mu    sync.RWMutex
	path  string
	users map[string]record
}

// Open loads the user map from path. A missing file is an empty store, not an
// error; the file is created on first insert.
func Open(path string) (*Store, error) {
	s := &Store{path: path, users: make(map[string]record)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read user file: %w", err)
	}
	if err := json.Unmarshal(data, &s.users); err != nil {
		return nil, fmt.Errorf("parse user file: %w", err)
	}
	return s, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return toUser(rec), nil
}

func (s *Store) Insert(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}

	s.users[user.Username] = record{
		Username:     user.Username,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}
	if err := s.flushLocked(); err != nil {
		delete(s.users, user.Username)
		return err
	}
	return nil
}

func (s *Store) All(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, rec := range s.users {
		users = append(users, *toUser(rec))
	}
	return users, nil
}

// flushLocked rewrites the backing file via a temp file and rename, so a
// crash mid-write cannot leave a truncated user map behind.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("write user file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write user file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write user file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write user file: %w", err)
	}
	return nil
}

func toUser(rec record) *domain.User {
	return &domain.User{
		Username:     rec.Username,
		FullName:     rec.FullName,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
	}
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

const usersKey = "auth:users"

// UserStore keeps all user records in a single Redis hash, one field per
// username. HSetNX does the per-key check-and-insert server-side, so two
// racing inserts of the same new username resolve to exactly one winner.
type UserStore struct {
	client *redis.Client
}

type redisUser struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// NewUserStore creates a UserStore wrapping the given Redis client.
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	raw, err := s.client.HGet(ctx, usersKey, username).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return decodeUser([]byte(raw))
}

func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(redisUser{
		Username:     user.Username,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	})
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	set, err := s.client.HSetNX(ctx, usersKey, user.Username, raw).Result()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if !set {
		return domain.ErrUserExists
	}
	return nil
}

func (s *UserStore) All(ctx context.Context) ([]domain.User, error) {
	entries, err := s.client.HGetAll(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(entries))
	for _, raw := range entries {
		user, err := decodeUser([]byte(raw))
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func decodeUser(raw []byte) (*domain.User, error) {
	var ru redisUser
	if err := json.Unmarshal(raw, &ru); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &domain.User{
		Username:     ru.Username,
		FullName:     ru.FullName,
		PasswordHash: ru.PasswordHash,
		Role:         ru.Role,
	}, nil
}

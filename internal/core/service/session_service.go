package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

// dummyHash is a valid bcrypt hash of an unguessable string. Login verifies
// against it when the username is unknown so the response time does not
// reveal whether the username exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Session implements the session operations over a UserStore.
type Session struct {
	store  ports.UserStore
	hasher ports.Hasher
	tokens ports.TokenService
	clock  func() time.Time
}

func NewSession(store ports.UserStore, hasher ports.Hasher, tokens ports.TokenService) *Session {
	return &Session{store: store, hasher: hasher, tokens: tokens, clock: time.Now}
}

// Login checks credentials and issues a session token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Session) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyHash)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username, user.Role, s.clock().UTC())
}

// ListUsers returns every stored user as a public projection, sorted by
// username for a stable response.
func (s *Session) ListUsers(ctx context.Context) ([]ports.Profile, error) {
	users, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]ports.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, ProfileOf(&u))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Username < profiles[j].Username })
	return profiles, nil
}

// CreateUser hashes the password and inserts a new record. Duplicates surface
// as domain.ErrUserExists from the store's atomic check-and-insert.
func (s *Session) CreateUser(ctx context.Context, input ports.CreateUserInput) error {
	if input.Username == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	return s.store.Insert(ctx, &domain.User{
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         input.Role,
	})
}

// ProfileOf projects the public fields of a user record.
func ProfileOf(u *domain.User) ports.Profile {
	return ports.Profile{Username: u.Username, FullName: u.FullName, Role: u.Role}
}

package ports

import (
	"context"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

// HealthCheck pings one external dependency of a store backend. Backends
// without external dependencies register no checks.
type HealthCheck func(ctx context.Context) error

// UserStore defines the interface for user record persistence. Usernames are
// case-sensitive exact keys with exactly one record per username.
//
// Implementations must make Insert an atomic per-key check-and-insert: when two
// callers race to create the same new username, exactly one succeeds and the
// other receives domain.ErrUserExists.
type UserStore interface {
	// FindByUsername returns the record for username, or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Insert stores a new record, or returns domain.ErrUserExists if the
	// username is already taken. Existing records are never overwritten.
	Insert(ctx context.Context, user *domain.User) error
	// All returns every stored record.
	All(ctx context.Context) ([]domain.User, error)
}

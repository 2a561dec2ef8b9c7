package ports

import (
	"context"
	"time"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

// Hasher performs one-way password hashing and verification.
type Hasher interface {
	// Hash produces a salted, self-describing hash string for plaintext.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed hash is
	// treated as a mismatch, never an error.
	Verify(plaintext, hash string) bool
}

// Claims is the decoded payload of a session token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies expiring signed session tokens. It owns the
// token encoding exclusively; no other component interprets the opaque string.
type TokenService interface {
	// Issue returns a signed token for subject with the configured TTL
	// measured from now.
	Issue(subject, role string, now time.Time) (string, error)
	// Verify decodes token and checks its signature and expiry against now.
	// Any malformation, signature mismatch, missing subject, or expiry in the
	// past yields domain.ErrInvalidToken. Verify does not consult the store.
	Verify(token string, now time.Time) (*Claims, error)
}

// AuthGuard resolves bearer tokens to users and enforces role requirements.
type AuthGuard interface {
	// Authenticate verifies token and re-looks-up its subject in the store.
	// Fails with domain.ErrInvalidToken when verification fails or the subject
	// no longer exists, so removed users are locked out before expiry.
	Authenticate(ctx context.Context, token string, now time.Time) (*domain.User, error)
	// RequireRole fails with domain.ErrForbidden unless user holds role.
	RequireRole(user *domain.User, role string) error
}

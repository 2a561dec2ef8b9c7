package service

import (
	"context"
	"errors"
	"time"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

// Guard resolves bearer tokens to authenticated users and enforces role
// requirements. It is stateless; every call stands alone.
type Guard struct {
	tokens ports.TokenService
	store  ports.UserStore
}

func NewGuard(tokens ports.TokenService, store ports.UserStore) *Guard {
	return &Guard{tokens: tokens, store: store}
}

// Authenticate verifies token, then re-looks-up the subject in the store. The
// re-lookup means a user removed after issuance is locked out immediately,
// and the effective role is always the store's current role rather than the
// possibly stale claim embedded in the token.
func (g *Guard) Authenticate(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	claims, err := g.tokens.Verify(token, now)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := g.store.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// RequireRole gates privileged operations. A valid identity with the wrong
// role fails with ErrForbidden, distinct from the ErrInvalidToken returned
// for authentication failures.
func (g *Guard) RequireRole(user *domain.User, role string) error {
	if user == nil || user.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

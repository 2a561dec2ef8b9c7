package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

// tokenClaims is the wire shape of a session token payload.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService issues and verifies HMAC-signed session tokens.
type JWTTokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewJWTTokenService builds a token service signing with secret. alg selects
// the HMAC variant (HS256, HS384, HS512); anything else falls back to HS256.
// If ttl <= 0 the 30-minute default applies.
func NewJWTTokenService(secret, alg string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	method := jwt.SigningMethodHS256
	switch alg {
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	}
	return &JWTTokenService{secret: []byte(secret), method: method, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *JWTTokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying {sub: subject, role, exp: now + TTL}.
func (s *JWTTokenService) Issue(subject, role string, now time.Time) (string, error) {
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify decodes token and validates signature and expiry against now. The
// signing method is pinned to the configured one. Every failure mode
// collapses to domain.ErrInvalidToken so decode internals never leak past
// this boundary.
func (s *JWTTokenService) Verify(token string, now time.Time) (*ports.Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != s.method.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.Claims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

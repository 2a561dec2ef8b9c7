package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

func newTestSession(store ports.UserStore) (*Session, *JWTTokenService) {
	tokens := NewJWTTokenService("secret", "HS256", 30*time.Minute)
	return NewSession(store, NewBcryptHasher(bcrypt.MinCost), tokens), tokens
}

func seedUser(t *testing.T, store ports.UserStore, username, fullName, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := store.Insert(context.Background(), &domain.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
	}); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func TestSession_Login_Success(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "alice", "Alice Smith", "secret1", domain.RoleUser)
	svc, tokens := newTestSession(store)

	token, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := tokens.Verify(token, time.Now().UTC())
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSession_Login_UniformFailure(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "alice", "Alice Smith", "secret1", domain.RoleUser)
	svc, _ := newTestSession(store)

	// Wrong password and unknown username must be indistinguishable.
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty credentials, got %v", err)
	}
}

func TestSession_Login_TokenExpiresAfterTTL(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "alice", "Alice Smith", "secret1", domain.RoleUser)
	svc, tokens := newTestSession(store)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return t0 }

	token, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := tokens.Verify(token, t0.Add(29*time.Minute)); err != nil {
		t.Fatalf("token should still verify before TTL: %v", err)
	}
	if _, err := tokens.Verify(token, t0.Add(31*time.Minute)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after TTL, got %v", err)
	}
}

func TestSession_CreateUser(t *testing.T) {
	store := newStubUserStore()
	svc, _ := newTestSession(store)
	ctx := context.Background()

	err := svc.CreateUser(ctx, ports.CreateUserInput{
		Username: "bob",
		FullName: "Bob Jones",
		Password: "hunter2",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	stored, err := store.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if stored.PasswordHash == "hunter2" || stored.PasswordHash == "" {
		t.Fatalf("password was not hashed: %q", stored.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")) != nil {
		t.Fatalf("stored hash does not match password")
	}

	// Second creation of the same username fails and leaves one record.
	err = svc.CreateUser(ctx, ports.CreateUserInput{
		Username: "bob", FullName: "Bob Again", Password: "other", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	again, err := store.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("bob missing after duplicate attempt: %v", err)
	}
	if again.FullName != "Bob Jones" {
		t.Fatalf("original record was overwritten: %+v", again)
	}
}

func TestSession_CreateUser_Validation(t *testing.T) {
	svc, _ := newTestSession(newStubUserStore())
	ctx := context.Background()

	cases := []ports.CreateUserInput{
		{Username: "", FullName: "X", Password: "pw", Role: domain.RoleUser},
		{Username: "x", FullName: "X", Password: "", Role: domain.RoleUser},
		{Username: "x", FullName: "X", Password: "pw", Role: "superuser"},
	}
	for _, input := range cases {
		if err := svc.CreateUser(ctx, input); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", input, err)
		}
	}
}

func TestSession_ListUsers(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "carol", "Carol White", "pw1", domain.RoleUser)
	seedUser(t, store, "admin", "Admin User", "pw2", domain.RoleAdmin)
	svc, _ := newTestSession(store)

	profiles, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	// Sorted by username.
	if profiles[0].Username != "admin" || profiles[1].Username != "carol" {
		t.Fatalf("unexpected ordering: %+v", profiles)
	}
	if profiles[0].Role != domain.RoleAdmin || profiles[1].FullName != "Carol White" {
		t.Fatalf("unexpected projection: %+v", profiles)
	}
}

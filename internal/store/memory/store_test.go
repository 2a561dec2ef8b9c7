package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

func TestStore_InsertAndFind(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.FindByUsername(ctx, "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := s.Insert(ctx, &domain.User{Username: "alice", FullName: "Alice Smith", Role: domain.RoleUser}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	user, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if user.FullName != "Alice Smith" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Usernames are case-sensitive exact keys.
	if _, err := s.FindByUsername(ctx, "Alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected case-sensitive lookup to miss, got %v", err)
	}
}

func TestStore_InsertDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Insert(ctx, &domain.User{Username: "bob", FullName: "Bob One"}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := s.Insert(ctx, &domain.User{Username: "bob", FullName: "Bob Two"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	user, err := s.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if user.FullName != "Bob One" {
		t.Fatalf("duplicate insert overwrote the original: %+v", user)
	}
}

func TestStore_ConcurrentInsertSameUsername(t *testing.T) {
	s := New()
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Insert(ctx, &domain.User{Username: "bob", FullName: "Bob"})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrUserExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one record, got %d", s.Len())
	}
}

func TestStore_All(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if err := s.Insert(ctx, &domain.User{Username: name}); err != nil {
			t.Fatalf("Insert %s: %v", name, err)
		}
	}

	users, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}

func TestStore_FindReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Insert(ctx, &domain.User{Username: "alice", Role: domain.RoleUser}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	first, _ := s.FindByUsername(ctx, "alice")
	first.Role = domain.RoleAdmin

	second, _ := s.FindByUsername(ctx, "alice")
	if second.Role != domain.RoleUser {
		t.Fatalf("mutating a returned record leaked into the store")
	}
}

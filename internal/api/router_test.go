package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/service"
	"github.com/Bhupesh-Khordia/auth-service/internal/store/memory"
	"github.com/Bhupesh-Khordia/auth-service/pkg/logger"
)

// TestRouter_EndToEnd drives the full HTTP surface against a seeded in-memory
// store: login, profile, admin gating, user creation, and duplicate rejection.
// A single router is built once because the prometheus middleware registers
// its collectors globally.
func TestRouter_EndToEnd(t *testing.T) {
	store := memory.New()
	seed := func(username, fullName, password, role string) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if err := store.Insert(context.Background(), &domain.User{
			Username: username, FullName: fullName, PasswordHash: string(hash), Role: role,
		}); err != nil {
			t.Fatalf("seed %s: %v", username, err)
		}
	}
	seed("alice", "Alice Smith", "secret1", domain.RoleUser)
	seed("admin", "Admin User", "admin123", domain.RoleAdmin)

	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewJWTTokenService("test-secret", "HS256", 30*time.Minute)
	guard := service.NewGuard(tokens, store)
	sessions := service.NewSession(store, hasher, tokens)

	logger.Reset()
	e := NewRouter(sessions, guard, nil, logger.Init(logger.Options{Level: "error"}))

	do := func(method, path, token string, body string, contentType string) *httptest.ResponseRecorder {
		t.Helper()
		var reader *strings.Reader
		if body == "" {
			reader = strings.NewReader("")
		} else {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	login := func(username, password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {username}, "password": {password}}
		return do(http.MethodPost, "/login", "", form.Encode(), "application/x-www-form-urlencoded")
	}

	// Wrong password fails uniformly.
	if rec := login("alice", "wrong"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password: expected 401, got %d", rec.Code)
	}
	// Unknown user gets the same response.
	if rec := login("ghost", "whatever"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("login with unknown user: expected 401, got %d", rec.Code)
	}

	// Alice logs in.
	rec := login("alice", "secret1")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	if loginResp.TokenType != "bearer" || loginResp.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", loginResp)
	}
	aliceToken := loginResp.AccessToken

	// Profile with the token.
	rec = do(http.MethodGet, "/profile", aliceToken, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", rec.Code)
	}
	var profile map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("profile response: %v", err)
	}
	if profile["username"] != "alice" || profile["full_name"] != "Alice Smith" || profile["role"] != "user" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// Profile without a token.
	if rec := do(http.MethodGet, "/profile", "", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("profile without token: expected 401, got %d", rec.Code)
	}

	// Alice is not an admin.
	if rec := do(http.MethodGet, "/users", aliceToken, "", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("list as user: expected 403, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/create_user", aliceToken,
		`{"username":"eve","full_name":"Eve","password":"pw","role":"user"}`,
		"application/json"); rec.Code != http.StatusForbidden {
		t.Fatalf("create as user: expected 403, got %d", rec.Code)
	}

	// Admin lists users.
	rec = login("admin", "admin123")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("admin login response: %v", err)
	}
	adminToken := loginResp.AccessToken

	rec = do(http.MethodGet, "/users", adminToken, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list as admin: expected 200, got %d", rec.Code)
	}
	var listResp struct {
		Users []map[string]string `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("list response: %v", err)
	}
	if len(listResp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listResp.Users))
	}
	if strings.Contains(rec.Body.String(), "$2") {
		t.Fatalf("password hash leaked in listing: %s", rec.Body.String())
	}

	// Admin creates bob; a second attempt conflicts.
	createBob := `{"username":"bob","full_name":"Bob Jones","password":"hunter2","role":"user"}`
	if rec := do(http.MethodPost, "/create_user", adminToken, createBob, "application/json"); rec.Code != http.StatusCreated {
		t.Fatalf("create bob: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodPost, "/create_user", adminToken, createBob, "application/json"); rec.Code != http.StatusConflict {
		t.Fatalf("create bob again: expected 409, got %d", rec.Code)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 records after duplicate attempt, got %d", store.Len())
	}

	// Bob can log in with his new credentials.
	if rec := login("bob", "hunter2"); rec.Code != http.StatusOK {
		t.Fatalf("bob login: expected 200, got %d", rec.Code)
	}

	// Health endpoints need no auth.
	if rec := do(http.MethodGet, "/health", "", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/health/ready", "", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
}

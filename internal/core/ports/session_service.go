package ports

import "context"

// Profile is the public projection of a user record. It never carries the
// password hash.
type Profile struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// CreateUserInput carries all data needed to create a new user.
type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     string
}

// SessionService exposes the session operations composed from the hasher,
// token service, guard, and store.
type SessionService interface {
	// Login checks credentials and returns a signed session token. Unknown
	// username and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	// ListUsers returns the public projection of every stored user.
	ListUsers(ctx context.Context) ([]Profile, error)
	// CreateUser hashes the password and inserts a new record.
	CreateUser(ctx context.Context, input CreateUserInput) error
}

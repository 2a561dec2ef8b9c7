package domain

import "errors"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an authenticated actor in the system. PasswordHash is opaque to
// everything except the Hasher and never crosses the API boundary.
type User struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// ValidRole reports whether role is one of the known role labels.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

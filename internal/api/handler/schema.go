package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// loginRequest binds the OAuth2-style form fields. JSON bodies are accepted
// too for non-browser clients.
type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type profileResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type listUsersResponse struct {
	Users []profileResponse `json:"users"`
}

type createUserRequest struct {
	Username string `json:"username"  validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password"  validate:"required"`
	Role     string `json:"role"      validate:"required,oneof=user admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

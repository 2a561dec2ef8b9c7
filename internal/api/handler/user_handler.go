package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bhupesh-Khordia/auth-service/internal/api/metrics"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

// UserHandler handles HTTP requests for profile and user management.
type UserHandler struct {
	sessions ports.SessionService
}

func NewUserHandler(sessions ports.SessionService) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// Profile returns the authenticated user's public record.
//
// @Summary      Get current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// List returns every user's public record. Admin only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	profiles, err := h.sessions.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	users := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, profileResponse{Username: p.Username, FullName: p.FullName, Role: p.Role})
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// Create provisions a new user. Admin only.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /create_user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	start := time.Now()
	err := h.sessions.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user details"})
		}
		return err
	}

	metrics.UserCreationDuration.Observe(time.Since(start).Seconds())
	metrics.UsersCreatedTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("User %s created successfully", req.Username),
	})
}

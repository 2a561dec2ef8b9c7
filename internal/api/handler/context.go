package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Bhupesh-Khordia/auth-service/internal/api/middleware"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// routing mistake and fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// currentUser extracts the user injected by the Auth middleware. Presence
// proves the middleware ran; a protected handler reached without it is a
// wiring bug and fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

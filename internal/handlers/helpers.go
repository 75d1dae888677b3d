package handlers

import (
	"errors"
	"net/http"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID placed on the context by
// the session middleware. Zero means unauthenticated, which cannot happen
// behind the middleware.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get(middleware.UserIDContextKey).(uint)
	return id
}

// domainHTTPError maps domain errors to HTTP status codes. Conflict-style
// domain errors (self-action, already friends, duplicate request, non-pending
// request) are all 400-class and recoverable by the caller.
func domainHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrAlreadyFriends),
		errors.Is(err, domain.ErrRequestAlreadyExists),
		errors.Is(err, domain.ErrInvalidState):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

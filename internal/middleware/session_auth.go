package middleware

import (
	"errors"
	"net/http"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// UserIDContextKey is where the resolved user ID is stored on the echo context.
const UserIDContextKey = "userID"

// SessionAuthMiddleware resolves the session cookie to a user ID and stores
// it on the context. Requests without a valid session get a 401.
func SessionAuthMiddleware(sessions repositories.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing session cookie")
			}

			session, err := sessions.GetSessionByToken(cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set(UserIDContextKey, session.UserID)
			return next(c)
		}
	}
}

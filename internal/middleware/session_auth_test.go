package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestEnv(t *testing.T) (*echo.Echo, repositories.SessionRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	return echo.New(), repositories.NewPostgresSessionRepository(db), db
}

func echoHandler(c echo.Context) error {
	userID, _ := c.Get(UserIDContextKey).(uint)
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID})
}

func TestSessionAuthMiddleware_MissingCookie(t *testing.T) {
	e, sessions, _ := newAuthTestEnv(t)
	handler := SessionAuthMiddleware(sessions)(echoHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSessionAuthMiddleware_InvalidToken(t *testing.T) {
	e, sessions, _ := newAuthTestEnv(t)
	handler := SessionAuthMiddleware(sessions)(echoHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSessionAuthMiddleware_ValidToken(t *testing.T) {
	e, sessions, db := newAuthTestEnv(t)
	handler := SessionAuthMiddleware(sessions)(echoHandler)

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(user).Error)
	session, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, handler(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, ctx.Get(UserIDContextKey))
}

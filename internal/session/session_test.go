package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newFlashRouter(m *Manager) *gin.Engine {
	router := gin.New()
	router.Use(m.LoadAndSave())
	router.POST("/books/new", func(c *gin.Context) {
		m.SetFlash(c, "Book created.")
		c.Redirect(http.StatusFound, "/books/page/1")
	})
	router.GET("/books/page/1", func(c *gin.Context) {
		c.String(http.StatusOK, m.PopFlash(c))
	})
	return router
}

// assertFlashRoundTrip sets a flash, follows the redirect with the cookie and
// checks the message is shown exactly once.
func assertFlashRoundTrip(t *testing.T, m *Manager) {
	t.Helper()
	router := newFlashRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/books/new", nil))
	require.Equal(t, http.StatusFound, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/books/page/1", nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	assert.Equal(t, "Book created.", get())
	assert.Empty(t, get(), "flash must be shown once")
}

func TestManager_MemoryStore(t *testing.T) {
	m, err := NewManager(nil, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, m.Lifetime)

	assertFlashRoundTrip(t, m)
}

func TestManager_SQLiteStore(t *testing.T) {
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "sessions.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	m, err := NewManager(sqlDB, config.Session{SecureCookies: true})
	require.NoError(t, err)
	assert.True(t, m.Cookie.Secure)
	assert.True(t, db.DB.Migrator().HasTable("sessions"))

	assertFlashRoundTrip(t, m)
}

func TestManager_NoCookieWithoutFlash(t *testing.T) {
	m, err := NewManager(nil, config.Session{})
	require.NoError(t, err)
	router := newFlashRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/page/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

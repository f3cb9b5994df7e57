// Package session stores one-shot flash messages in a cookie-keyed session.
//
// Sessions live in the SQLite database when one is available and in memory
// otherwise (e.g. when books are stored in PostgreSQL).
package session

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
)

const (
	CookieName = "bookshelf_session"
	flashKey   = "flash"
)

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager. sqlDB must be a SQLite
// connection (the one behind gorm) or nil to keep sessions in memory.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = sqlite3store.New(sqlDB)
	} else {
		sm.Store = memstore.New()
	}

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}

	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// SetFlash stores a message to show on the next rendered page.
func (m *Manager) SetFlash(c *gin.Context, message string) {
	m.Put(c.Request.Context(), flashKey, message)
}

// PopFlash returns and clears the pending flash message, if any.
func (m *Manager) PopFlash(c *gin.Context) string {
	return m.PopString(c.Request.Context(), flashKey)
}

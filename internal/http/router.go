package http

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	// Match on the escaped path so "/" inside a search query stays in :query.
	router.UseRawPath = true
	router.HandleMethodNotAllowed = true
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(security.RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(Recover))
	router.Use(security.HeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware())
	}

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}
	if cfg.WriteLimiter != nil {
		router.Use(cfg.WriteLimiter.Handler())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flash Flasher
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadAndSave())
		flash = cfg.Sessions
	}

	router.Use(ErrorHandler())

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
	}
	tmpl := template.Must(web.Templates(funcMap))
	router.SetHTMLTemplate(tmpl)

	router.StaticFS("/static", http.FS(web.Static()))

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books, flash)

	router.GET("/health", health.Status)

	router.GET("/", booksController.Home)
	router.GET("/books/page/:page", booksController.ListPage)
	router.GET("/books/new", booksController.NewForm)
	router.POST("/books/new", booksController.Create)
	router.GET("/books/:id", booksController.Detail)
	router.POST("/books/:id", booksController.Update)
	router.GET("/books/:id/delete", booksController.DeleteConfirm)
	router.POST("/books/:id/delete", booksController.Delete)
	router.GET("/search", booksController.SearchForm)
	router.GET("/search/:query", booksController.Search)

	router.NoRoute(NotFound)
	router.NoMethod(NotFound)

	return router
}

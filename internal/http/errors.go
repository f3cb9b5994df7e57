package http

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/security"
)

// ErrorHandler renders the error page for the last error a handler attached
// with c.Error. Not-found errors get the 404 page; everything else is
// logged and shown as a generic 500 page.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if errors.Is(err, books.ErrNotFound) {
			renderNotFound(c)
			return
		}

		log.Printf("Internal error (request %s, %s %s): %v",
			security.RequestID(c), c.Request.Method, c.Request.URL.Path, err)
		renderUnexpected(c)
	}
}

// NotFound handles unknown routes and methods.
func NotFound(c *gin.Context) {
	renderNotFound(c)
}

// Recover is the gin.CustomRecovery handler for panics in handlers.
func Recover(c *gin.Context, recovered any) {
	log.Printf("Panic recovered (request %s, %s %s): %v",
		security.RequestID(c), c.Request.Method, c.Request.URL.Path, recovered)
	if !c.Writer.Written() {
		renderUnexpected(c)
	}
	c.Abort()
}

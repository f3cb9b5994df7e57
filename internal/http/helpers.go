package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
)

const (
	notFoundMessage   = "Sorry! We couldn't find the page you were looking for."
	unexpectedMessage = "Sorry! There was an unexpected error on the server."
)

// bookForm is what the book form partial renders: the submitted (or stored)
// values as text plus the id the form posts back to.
type bookForm struct {
	ID uint
	books.BookFields
}

func formFromBook(book *entities.Book) *bookForm {
	return &bookForm{ID: book.ID, BookFields: books.FieldsFromBook(book)}
}

// renderPage renders a view with every key the layout reads filled in, so
// templates never print "<no value>".
func renderPage(c *gin.Context, status int, view string, data gin.H) {
	page := gin.H{
		"Title":     "Bookshelf",
		"Query":     "",
		"Search":    "",
		"Flash":     "",
		"ReadOnly":  readonly.Enabled(c),
		"CSRFField": security.CSRFField(c),
		"Book":      nil,
		"Books":     nil,
		"Errors":    nil,
		"Pages":     nil,
		"CurrPage":  0,
		"Message":   "",
	}
	for k, v := range data {
		page[k] = v
	}
	c.HTML(status, view, page)
}

func renderNotFound(c *gin.Context) {
	renderPage(c, http.StatusNotFound, "page-not-found", gin.H{
		"Title":   "Page Not Found",
		"Message": notFoundMessage,
	})
}

func renderUnexpected(c *gin.Context) {
	renderPage(c, http.StatusInternalServerError, "error", gin.H{
		"Title":   "Server Error",
		"Message": unexpectedMessage,
	})
}

// parseIDParam extracts a positive integer from URL parameters.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePageParam extracts the page number. Values below 1 are kept; the
// repository treats them as the first page.
func parsePageParam(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return 0, false
	}
	return page, true
}

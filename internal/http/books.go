package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
)

const firstPage = "/books/page/1"

// BooksController serves the HTML pages for browsing and editing books.
type BooksController struct {
	store BookStore
	flash Flasher
}

// NewBooksController creates a controller. flash may be nil.
func NewBooksController(store BookStore, flash Flasher) *BooksController {
	return &BooksController{store: store, flash: flash}
}

func (b *BooksController) render(c *gin.Context, status int, view string, data gin.H) {
	if b.flash != nil {
		data["Flash"] = b.flash.PopFlash(c)
	}
	renderPage(c, status, view, data)
}

func (b *BooksController) redirectWithFlash(c *gin.Context, message string) {
	if b.flash != nil {
		b.flash.SetFlash(c, message)
	}
	c.Redirect(http.StatusFound, firstPage)
}

// Home handles GET /
func (b *BooksController) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, firstPage)
}

// ListPage handles GET /books/page/:page
func (b *BooksController) ListPage(c *gin.Context) {
	page, ok := parsePageParam(c)
	if !ok {
		_ = c.Error(books.ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	list, err := b.store.ListPage(ctx, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pages, err := b.store.CountPages(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	b.render(c, http.StatusOK, "index", gin.H{
		"Title":    "Books",
		"Books":    list,
		"Pages":    pages,
		"CurrPage": page,
	})
}

// NewForm handles GET /books/new
func (b *BooksController) NewForm(c *gin.Context) {
	b.render(c, http.StatusOK, "new-book", gin.H{
		"Title": "New Book",
		"Book":  &bookForm{},
	})
}

// Create handles POST /books/new
func (b *BooksController) Create(c *gin.Context) {
	var fields books.BookFields
	if err := c.ShouldBind(&fields); err != nil {
		_ = c.Error(err)
		return
	}

	book, err := b.store.Create(c.Request.Context(), fields)
	var failure *books.ValidationFailure
	switch {
	case errors.As(err, &failure):
		b.render(c, http.StatusOK, "new-book", gin.H{
			"Title":  "New Book",
			"Book":   &bookForm{BookFields: failure.Fields},
			"Errors": failure.Messages(),
		})
	case err != nil:
		_ = c.Error(err)
	default:
		b.redirectWithFlash(c, `Added "`+book.Title+`".`)
	}
}

// Detail handles GET /books/:id. A missing book renders the page without one.
func (b *BooksController) Detail(c *gin.Context) {
	data := gin.H{"Title": "Book Not Found"}

	if id, ok := parseIDParam(c, "id"); ok {
		book, err := b.store.GetByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, books.ErrNotFound):
		case err != nil:
			_ = c.Error(err)
			return
		default:
			data["Title"] = book.Title
			data["Book"] = formFromBook(book)
		}
	}

	b.render(c, http.StatusOK, "book-detail", data)
}

// Update handles POST /books/:id
func (b *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		_ = c.Error(books.ErrNotFound)
		return
	}

	var fields books.BookFields
	if err := c.ShouldBind(&fields); err != nil {
		_ = c.Error(err)
		return
	}

	book, err := b.store.Update(c.Request.Context(), id, fields)
	var failure *books.ValidationFailure
	switch {
	case errors.As(err, &failure):
		b.render(c, http.StatusOK, "book-detail", gin.H{
			"Title":  "Update Book",
			"Book":   &bookForm{ID: failure.ID, BookFields: failure.Fields},
			"Errors": failure.Messages(),
		})
	case err != nil:
		_ = c.Error(err)
	default:
		b.redirectWithFlash(c, `Updated "`+book.Title+`".`)
	}
}

// DeleteConfirm handles GET /books/:id/delete
func (b *BooksController) DeleteConfirm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, firstPage)
		return
	}

	book, err := b.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, books.ErrNotFound) {
		c.Redirect(http.StatusFound, firstPage)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	b.render(c, http.StatusOK, "delete", gin.H{
		"Title": "Delete Book",
		"Book":  book,
	})
}

// Delete handles POST /books/:id/delete
func (b *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		_ = c.Error(books.ErrNotFound)
		return
	}

	if err := b.store.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	b.redirectWithFlash(c, "Book deleted.")
}

// Search handles GET /search/:query. With no matches it falls back to the
// first page of books without pagination controls.
func (b *BooksController) Search(c *gin.Context) {
	query := c.Param("query")
	ctx := c.Request.Context()

	results, err := b.store.Search(ctx, query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(results) > 0 {
		b.render(c, http.StatusOK, "index", gin.H{
			"Title": "Search Results",
			"Query": query,
			"Books": results,
		})
		return
	}

	list, err := b.store.ListPage(ctx, 1)
	if err != nil {
		_ = c.Error(err)
		return
	}
	b.render(c, http.StatusOK, "index", gin.H{
		"Title":  "Books",
		"Query":  query,
		"Search": query,
		"Books":  list,
	})
}

// SearchForm handles GET /search?q= from the search box when scripts are off.
func (b *BooksController) SearchForm(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.Redirect(http.StatusFound, firstPage)
		return
	}
	c.Redirect(http.StatusFound, "/search/"+url.PathEscape(query))
}

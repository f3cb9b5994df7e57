package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore is everything the page handlers need from the books table.
// Implemented by books.Repository.
type BookStore interface {
	ListPage(ctx context.Context, page int) ([]entities.Book, error)
	CountPages(ctx context.Context) ([]int, error)
	Search(ctx context.Context, query string) ([]entities.Book, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	Create(ctx context.Context, fields books.BookFields) (*entities.Book, error)
	Update(ctx context.Context, id uint, fields books.BookFields) (*entities.Book, error)
	Delete(ctx context.Context, id uint) error
}

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Flasher carries one-shot messages between a redirect and the next page.
// Implemented by session.Manager.
type Flasher interface {
	SetFlash(c *gin.Context, message string)
	PopFlash(c *gin.Context) string
}

var _ BookStore = (*books.Repository)(nil)

// Package books provides database operations for the bookshelf.
//
// The Repository is the only component that reads or writes the books
// table. Listing is paginated in fixed windows of PageSize books ordered
// by descending id; writes are validated before anything is persisted.
//
// # Errors
//
//   - ErrNotFound: an id-keyed lookup matched nothing (check with errors.Is)
//   - *ValidationFailure: submitted fields were rejected (check with errors.As)
//
// Every other error comes from the database and is returned wrapped.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, err := repo.ListPage(ctx, 2)
//	book, err := repo.Create(ctx, books.BookFields{Title: "Emma", Author: "Jane Austen"})
package books

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// PageSize is the number of books shown per page.
const PageSize = 10

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Offset returns the number of rows to skip for a 1-based page number.
// Pages below 1 are treated as the first page; pages too large to
// multiply out saturate at math.MaxInt.
func Offset(page int) int {
	if page <= 1 {
		return 0
	}
	if page-1 > math.MaxInt/PageSize {
		return math.MaxInt
	}
	return PageSize * (page - 1)
}

// ListPage returns up to PageSize books, newest first. A page past the end
// of the data yields an empty slice.
func (r *Repository) ListPage(ctx context.Context, page int) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(PageSize).
		Offset(Offset(page)).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books page %d: %w", page, err)
	}
	return books, nil
}

// Count returns the total number of books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

// CountPages returns the page numbers [1..n] needed to show every book.
func (r *Repository) CountPages(ctx context.Context) ([]int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages, nil
}

// Search returns every book whose title, author, genre or year contains
// query (case-insensitive). The query is matched literally. Both sides are
// folded by the database's LOWER.
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Book, error) {
	books := []entities.Book{}
	pattern := "%" + escapeLike(query) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`+
			` OR LOWER(author) LIKE LOWER(?) ESCAPE '\'`+
			` OR LOWER(COALESCE(genre, '')) LIKE LOWER(?) ESCAPE '\'`+
			` OR CAST(year AS TEXT) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern).
		Order("id DESC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search books for %q: %w", query, err)
	}
	return books, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &book, nil
}

// Create validates fields and persists a new book.
func (r *Repository) Create(ctx context.Context, fields BookFields) (*entities.Book, error) {
	fields = fields.Normalize()
	year, failure := validateFields(fields)
	if failure != nil {
		return nil, failure
	}

	book := &entities.Book{
		Title:  fields.Title,
		Author: fields.Author,
		Genre:  fields.Genre,
		Year:   year,
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Update replaces the submitted fields of an existing book.
func (r *Repository) Update(ctx context.Context, id uint, fields BookFields) (*entities.Book, error) {
	book, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields = fields.Normalize()
	year, failure := validateFields(fields)
	if failure != nil {
		failure.ID = id
		return nil, failure
	}

	book.Title = fields.Title
	book.Author = fields.Author
	book.Genre = fields.Genre
	book.Year = year
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", id, err)
	}
	return book, nil
}

// Delete permanently removes a book.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	book, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(book).Error; err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	repo   *books.Repository
}

func setupBooksApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "books.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions, err := session.NewManager(nil, config.Session{})
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)
	router := NewRouter(RouterConfig{
		Books:    repo,
		Database: db,
		Sessions: sessions,
		Version:  "test",
	})
	return &testApp{router: router, repo: repo}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) create(t *testing.T, title, author, genre, year string) uint {
	t.Helper()
	book, err := a.repo.Create(context.Background(), books.BookFields{
		Title: title, Author: author, Genre: genre, Year: year,
	})
	require.NoError(t, err)
	return book.ID
}

func (a *testApp) count(t *testing.T) int64 {
	t.Helper()
	n, err := a.repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func formValues(title, author, genre, year string) url.Values {
	return url.Values{"title": {title}, "author": {author}, "genre": {genre}, "year": {year}}
}

func TestBooksController_Home(t *testing.T) {
	app := setupBooksApp(t)

	w := app.get("/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books/page/1", w.Header().Get("Location"))
}

func TestBooksController_ListPage(t *testing.T) {
	app := setupBooksApp(t)
	for i := 1; i <= 25; i++ {
		app.create(t, fmt.Sprintf("Book %02d", i), "Author", "", "")
	}

	t.Run("first page shows the newest ten", func(t *testing.T) {
		w := app.get("/books/page/1")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Book 25")
		assert.Contains(t, body, "Book 16")
		assert.NotContains(t, body, "Book 15")
		assert.Contains(t, body, `href="/books/page/3"`)
		assert.Contains(t, body, `href="/books/page/1" class="active"`)
	})

	t.Run("third page shows the oldest five", func(t *testing.T) {
		w := app.get("/books/page/3")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		for i := 1; i <= 5; i++ {
			assert.Contains(t, body, fmt.Sprintf("Book %02d", i))
		}
		assert.NotContains(t, body, "Book 06")
		assert.Contains(t, body, `href="/books/page/3" class="active"`)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		w := app.get("/books/page/9")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No books on this page.")
	})

	t.Run("non-integer page is not found", func(t *testing.T) {
		w := app.get("/books/page/abc")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "find the page you were looking for")
	})
}

func TestBooksController_NewForm(t *testing.T) {
	app := setupBooksApp(t)

	w := app.get("/books/new")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/books/new"`)
	assert.Contains(t, body, `name="title"`)
	assert.NotContains(t, body, "<no value>")
}

func TestBooksController_Create(t *testing.T) {
	t.Run("valid book is stored and flashed", func(t *testing.T) {
		app := setupBooksApp(t)

		w := app.post("/books/new", formValues("Dune", "Frank Herbert", "Science Fiction", "1965"))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/books/page/1", w.Header().Get("Location"))
		assert.Equal(t, int64(1), app.count(t))

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		page := app.get("/books/page/1", cookies...)
		assert.Contains(t, page.Body.String(), "Added &#34;Dune&#34;.")
		assert.Contains(t, page.Body.String(), "Frank Herbert")
	})

	t.Run("missing title re-renders the form", func(t *testing.T) {
		app := setupBooksApp(t)

		w := app.post("/books/new", formValues("", "Smith", "", ""))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "&#34;Title&#34; is required")
		assert.Contains(t, body, `value="Smith"`)
		assert.Zero(t, app.count(t))
	})

	t.Run("non-numeric year re-renders the form", func(t *testing.T) {
		app := setupBooksApp(t)

		w := app.post("/books/new", formValues("Emma", "Jane Austen", "", "nineteen"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "&#34;Year&#34; must be a whole number")
		assert.Contains(t, w.Body.String(), `value="nineteen"`)
		assert.Zero(t, app.count(t))
	})
}

func TestBooksController_Detail(t *testing.T) {
	app := setupBooksApp(t)
	id := app.create(t, "Dune", "Frank Herbert", "Science Fiction", "1965")

	t.Run("existing book", func(t *testing.T) {
		w := app.get(fmt.Sprintf("/books/%d", id))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, fmt.Sprintf(`action="/books/%d"`, id))
		assert.Contains(t, body, `value="Dune"`)
		assert.Contains(t, body, `value="1965"`)
	})

	for _, path := range []string{"/books/999", "/books/abc"} {
		t.Run("missing book "+path, func(t *testing.T) {
			w := app.get(path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "Book Not Found")
		})
	}
}

func TestBooksController_Update(t *testing.T) {
	t.Run("valid update is stored", func(t *testing.T) {
		app := setupBooksApp(t)
		id := app.create(t, "Dune", "Frank Herbert", "", "")

		w := app.post(fmt.Sprintf("/books/%d", id), formValues("Dune Messiah", "Frank Herbert", "Science Fiction", "1969"))

		require.Equal(t, http.StatusFound, w.Code)
		book, err := app.repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", book.Title)
		assert.Equal(t, "1969", book.YearString())
	})

	t.Run("invalid update keeps the id and the attempted values", func(t *testing.T) {
		app := setupBooksApp(t)
		id := app.create(t, "Dune", "Frank Herbert", "", "")

		w := app.post(fmt.Sprintf("/books/%d", id), formValues("Dune", "", "", "1969"))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "&#34;Author&#34; is required")
		assert.Contains(t, body, fmt.Sprintf(`action="/books/%d"`, id))
		assert.Contains(t, body, `value="1969"`)

		book, err := app.repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Frank Herbert", book.Author)
	})

	t.Run("missing book is not found", func(t *testing.T) {
		app := setupBooksApp(t)

		w := app.post("/books/999", formValues("Dune", "Frank Herbert", "", ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Zero(t, app.count(t))
	})
}

func TestBooksController_DeleteConfirm(t *testing.T) {
	app := setupBooksApp(t)
	id := app.create(t, "Dune", "Frank Herbert", "", "")

	w := app.get(fmt.Sprintf("/books/%d/delete", id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `Are you sure you want to delete "Dune"`)

	for _, path := range []string{"/books/999/delete", "/books/abc/delete"} {
		w := app.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/books/page/1", w.Header().Get("Location"))
	}
}

func TestBooksController_Delete(t *testing.T) {
	t.Run("existing book is removed", func(t *testing.T) {
		app := setupBooksApp(t)
		id := app.create(t, "Dune", "Frank Herbert", "", "")

		w := app.post(fmt.Sprintf("/books/%d/delete", id), url.Values{})

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/books/page/1", w.Header().Get("Location"))
		_, err := app.repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, books.ErrNotFound)
	})

	t.Run("missing book leaves storage unchanged", func(t *testing.T) {
		app := setupBooksApp(t)
		app.create(t, "Dune", "Frank Herbert", "", "")

		w := app.post("/books/999/delete", url.Values{})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, int64(1), app.count(t))
	})
}

func TestBooksController_Search(t *testing.T) {
	app := setupBooksApp(t)
	app.create(t, "Dune", "Frank Herbert", "Science Fiction", "1965")
	app.create(t, "Contact", "Carl Sagan", "Science Fiction", "1985")
	app.create(t, "AC/DC: The Story", "Anonymous", "", "")

	t.Run("matches only, without pagination", func(t *testing.T) {
		w := app.get("/search/1985")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Contact")
		assert.NotContains(t, body, "Frank Herbert")
		assert.NotContains(t, body, `class="pagination"`)
		assert.NotContains(t, body, "No results found")
		assert.Contains(t, body, `value="1985"`)
	})

	t.Run("no matches falls back to the first page", func(t *testing.T) {
		w := app.get("/search/zzz")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `No results found for "zzz"`)
		assert.Contains(t, body, "Frank Herbert")
		assert.Contains(t, body, "Carl Sagan")
		assert.NotContains(t, body, `class="pagination"`)
	})

	t.Run("escaped slash stays in the query", func(t *testing.T) {
		w := app.get("/search/ac%2Fdc")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "AC/DC: The Story")
		assert.NotContains(t, w.Body.String(), "No results found")
	})
}

func TestBooksController_SearchForm(t *testing.T) {
	app := setupBooksApp(t)

	tests := []struct {
		query    string
		location string
	}{
		{"dune", "/search/dune"},
		{"  science fiction ", "/search/science%20fiction"},
		{"ac/dc", "/search/ac%2Fdc"},
		{"", "/books/page/1"},
		{"   ", "/books/page/1"},
	}

	for _, tt := range tests {
		w := app.get("/search?q=" + url.QueryEscape(tt.query))
		assert.Equal(t, http.StatusFound, w.Code, tt.query)
		assert.Equal(t, tt.location, w.Header().Get("Location"), tt.query)
	}
}

// Package database owns the storage-engine handle for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup for SQLite or PostgreSQL, migrations
//	└── books/           # Book queries: pagination, search, validated writes
//
// # Usage
//
// The handle is opened once at process start and injected into the
// repositories that need it:
//
//	db, err := database.NewDatabase(cfg.Database)
//	if err != nil { ... }
//	defer db.Close()
//
//	booksRepo := books.NewRepository(db.DB)
//	page, err := booksRepo.ListPage(ctx, 1)
//
// No other package talks to the books table directly.
package database

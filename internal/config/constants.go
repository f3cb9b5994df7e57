package config

// Default paths and drivers for the database
const (
	// DefaultDatabasePath is the default path for the SQLite database file
	DefaultDatabasePath = "./bookshelf.db"

	// DriverSQLite stores books in a local SQLite file (default)
	DriverSQLite = "sqlite"

	// DriverPostgres stores books in PostgreSQL, addressed by DATABASE_DSN
	DriverPostgres = "postgres"
)

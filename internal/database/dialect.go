package database

import (
	"database/sql"
	"regexp"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures the per-database differences the repositories need to
// stay driver-agnostic.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// RewriteQuery converts ? placeholders to the driver's syntax.
	RewriteQuery(query string) string

	// SupportsLastInsertID reports whether the driver implements
	// sql.Result.LastInsertId.
	SupportsLastInsertID() bool

	// ConfigureConnection applies database-specific session settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the per-dialect migrations directory name.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL creating the migrations
	// tracking table.
	CreateMigrationsTableQuery() string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// SQLiteDialect implements Dialect for SQLite.
type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string { return "sqlite3" }

func (SQLiteDialect) RewriteQuery(query string) string { return query }

func (SQLiteDialect) SupportsLastInsertID() bool { return true }

func (SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// WAL mode for better concurrency under the single-writer model.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}
	return nil
}

func (SQLiteDialect) MigrationsSubdir() string { return "sqlite" }

func (SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

// PostgresDialect implements Dialect for PostgreSQL.
type PostgresDialect struct{}

func (PostgresDialect) DriverName() string { return "postgres" }

func (PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

// PostgreSQL has no LastInsertId; inserts use RETURNING instead.
func (PostgresDialect) SupportsLastInsertID() bool { return false }

func (PostgresDialect) ConfigureConnection(*sql.DB) error { return nil }

func (PostgresDialect) MigrationsSubdir() string { return "postgres" }

func (PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

// MySQLDialect implements Dialect for MySQL.
type MySQLDialect struct{}

func (MySQLDialect) DriverName() string { return "mysql" }

func (MySQLDialect) RewriteQuery(query string) string { return query }

func (MySQLDialect) SupportsLastInsertID() bool { return true }

func (MySQLDialect) ConfigureConnection(db *sql.DB) error {
	_, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;")
	return err
}

func (MySQLDialect) MigrationsSubdir() string { return "mysql" }

func (MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

// Package sqlite is the default store dialect, backed by the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:?_journal_mode=WAL"

type sqliteDialect struct{}

// New returns the SQLite dialect.
func New() dialect.Dialect { return sqliteDialect{} }

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return "sqlite" }

// NormalizeDSN maps an empty DSN to a private in-memory database.
func (sqliteDialect) NormalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return MemoryDSN, nil
	}
	return dsn, nil
}

// Configure pins the pool to one connection, since SQLite does not support
// concurrent writers and each in-memory connection is its own database,
// then turns on foreign keys (off by default in SQLite).
func (sqliteDialect) Configure(db *sqlx.DB) error {
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	return nil
}

func (sqliteDialect) Types() map[string]string {
	return map[string]string{
		"id":    "TEXT",
		"str":   "TEXT",
		"text":  "TEXT",
		"time":  "DATETIME",
		"bool":  "INTEGER",
		"real":  "REAL",
		"int":   "INTEGER",
		"true":  "1",
		"false": "0",
	}
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FileDSN returns the DSN of the database file kept in dataDir, creating
// the directory if needed.
func FileDSN(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dataDir, "bzfitness.db") + "?_journal_mode=WAL&_busy_timeout=5000", nil
}

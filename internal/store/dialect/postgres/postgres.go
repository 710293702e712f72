// Package postgres is the PostgreSQL store dialect, using pgx through its
// database/sql adapter.
package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type postgresDialect struct{}

// New returns the PostgreSQL dialect.
func New() dialect.Dialect { return postgresDialect{} }

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) NormalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", errors.New("postgres: database.dsn is required")
	}
	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("postgres: invalid dsn: %w", err)
	}
	return dsn, nil
}

func (postgresDialect) Configure(db *sqlx.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
	return nil
}

func (postgresDialect) Types() map[string]string {
	return map[string]string{
		"id":    "VARCHAR(64)",
		"str":   "VARCHAR(191)",
		"text":  "TEXT",
		"time":  "TIMESTAMPTZ",
		"bool":  "BOOLEAN",
		"real":  "DOUBLE PRECISION",
		"int":   "INTEGER",
		"true":  "TRUE",
		"false": "FALSE",
	}
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

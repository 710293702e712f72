// Package mysql is the MySQL/MariaDB store dialect.
package mysql

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
)

// erDupEntry is the server error number for a duplicate key.
const erDupEntry = 1062

type mysqlDialect struct{}

// New returns the MySQL dialect.
func New() dialect.Dialect { return mysqlDialect{} }

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

// NormalizeDSN forces parseTime and UTC so DATETIME columns scan into
// time.Time values, and clientFoundRows so an UPDATE that changes nothing
// still reports the matched row.
func (mysqlDialect) NormalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", errors.New("mysql: database.dsn is required")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql: invalid dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func (mysqlDialect) Configure(db *sqlx.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (mysqlDialect) Types() map[string]string {
	return map[string]string{
		"id":    "VARCHAR(64)",
		"str":   "VARCHAR(191)",
		"text":  "TEXT",
		"time":  "DATETIME(3)",
		"bool":  "BOOLEAN",
		"real":  "DOUBLE",
		"int":   "INT",
		"true":  "TRUE",
		"false": "FALSE",
	}
}

func (mysqlDialect) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}

// Package dialect abstracts the differences between the SQL engines the
// store can run on: driver name, DSN handling, column types used by the
// migrations, and how each engine reports a unique-key violation.
package dialect

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// Dialect is implemented once per supported SQL engine.
type Dialect interface {
	// Name is the configuration value selecting this dialect ("sqlite").
	Name() string

	// DriverName is the database/sql driver to open.
	DriverName() string

	// NormalizeDSN validates dsn and applies settings the store relies on.
	NormalizeDSN(dsn string) (string, error)

	// Configure is called once on a freshly opened pool.
	Configure(db *sqlx.DB) error

	// Types maps the migration placeholders (id, str, text, time, bool,
	// real, int, true, false) to engine column types and literals.
	Types() map[string]string

	// IsUniqueViolation reports whether err was caused by a duplicate key.
	IsUniqueViolation(err error) bool
}

// Expand replaces {placeholder} tokens in ddl with d's column types.
func Expand(d Dialect, ddl string) string {
	types := d.Types()
	pairs := make([]string, 0, 2*len(types))
	for k, v := range types {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(ddl)
}

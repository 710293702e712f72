// Package store persists the gym's data (admin users, members, attendance,
// payments, schedule, contact submissions and progress tracking) in a SQL
// database selected by a dialect.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/retshidi-radebe/bzfitness/internal/store/dialect"
	"github.com/retshidi-radebe/bzfitness/internal/store/dialect/sqlite"
)

// Options selects the database to open.
type Options struct {
	// Dialect defaults to SQLite.
	Dialect dialect.Dialect
	// DSN is passed through Dialect.NormalizeDSN. Empty with SQLite opens a
	// private in-memory database.
	DSN string
	// Location is the gym's time zone, used for calendar arithmetic on
	// stored instants. Defaults to UTC.
	Location *time.Location
}

// Store is the gym database.
type Store struct {
	db      *sqlx.DB
	dialect dialect.Dialect
	loc     *time.Location
}

// Open connects to the database described by opts and applies migrations.
func Open(opts Options) (*Store, error) {
	d := opts.Dialect
	if d == nil {
		d = sqlite.New()
	}

	dsn, err := d.NormalizeDSN(opts.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d.Name(), err)
	}
	if err := d.Configure(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure %s database: %w", d.Name(), err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	s := &Store{db: db, dialect: d, loc: loc}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s database: %w", d.Name(), err)
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DialectName reports which SQL engine backs the store.
func (s *Store) DialectName() string {
	return s.dialect.Name()
}

// inTx runs fn inside a transaction, committing when it returns nil.
// fn must use tx exclusively: SQLite pools hold a single connection.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// wrap annotates err with op, translating duplicate-key failures into
// ErrConflict.
func (s *Store) wrap(op string, err error) error {
	if s.dialect.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() time.Time {
	return time.Now().UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// namedExecer is satisfied by both *sqlx.DB and *sqlx.Tx.
type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

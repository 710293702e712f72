package sqlite

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestIsUniqueViolation(t *testing.T) {
	d := New()
	dsn, _ := d.NormalizeDSN("")
	db, err := sqlx.Connect(d.DriverName(), dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()
	if err := d.Configure(db); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	db.MustExec(`CREATE TABLE t (name TEXT UNIQUE NOT NULL)`)
	db.MustExec(`INSERT INTO t (name) VALUES ('a')`)

	_, err = db.Exec(`INSERT INTO t (name) VALUES ('a')`)
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !d.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
	if d.IsUniqueViolation(errors.New("disk I/O error")) {
		t.Error("IsUniqueViolation matched an unrelated error")
	}
	if d.IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation(nil) = true")
	}
}

func TestFileDSN(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	dsn, err := FileDSN(dir)
	if err != nil {
		t.Fatalf("FileDSN: %v", err)
	}
	if !strings.HasPrefix(dsn, filepath.Join(dir, "bzfitness.db")+"?") {
		t.Errorf("FileDSN = %q", dsn)
	}
	if !strings.Contains(dsn, "_busy_timeout=5000") {
		t.Errorf("FileDSN missing busy timeout: %q", dsn)
	}
}

package mysql

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestNormalizeDSNForcesParseTime(t *testing.T) {
	d := New()

	got, err := d.NormalizeDSN("gym:secret@tcp(localhost:3306)/bzfitness")
	if err != nil {
		t.Fatalf("NormalizeDSN: %v", err)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Errorf("NormalizeDSN = %q, want parseTime=true", got)
	}
	if !strings.Contains(got, "clientFoundRows=true") {
		t.Errorf("NormalizeDSN = %q, want clientFoundRows=true", got)
	}
	if !strings.Contains(got, "/bzfitness") {
		t.Errorf("NormalizeDSN lost the database name: %q", got)
	}

	if _, err := d.NormalizeDSN(""); err == nil {
		t.Error("expected error for empty dsn")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	d := New()

	dup := fmt.Errorf("insert member: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !d.IsUniqueViolation(dup) {
		t.Error("expected wrapped 1062 to be a unique violation")
	}
	if d.IsUniqueViolation(&mysql.MySQLError{Number: 1452}) {
		t.Error("foreign key error reported as unique violation")
	}
}

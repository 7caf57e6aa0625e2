package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
	if !isUniqueViolation(unique) {
		t.Fatalf("expected 23505 to be detected as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("exec: %w", unique)) {
		t.Fatalf("expected wrapped pg error to be detected")
	}

	other := &pgconn.PgError{Code: pgerrcode.NotNullViolation}
	if isUniqueViolation(other) {
		t.Fatalf("expected non-unique pg error to be ignored")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Fatalf("expected plain error to be ignored")
	}
}

package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestRequireRow(t *testing.T) {
	if err := requireRow(pgconn.NewCommandTag("DELETE 1"), nil); err != nil {
		t.Errorf("one affected row should pass, got %v", err)
	}

	if err := requireRow(pgconn.NewCommandTag("DELETE 0"), nil); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("zero affected rows should map to pgx.ErrNoRows, got %v", err)
	}

	execErr := errors.New("connection reset")
	if err := requireRow(pgconn.CommandTag{}, execErr); !errors.Is(err, execErr) {
		t.Errorf("exec errors should pass through, got %v", err)
	}
}

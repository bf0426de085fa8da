package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt > 0 && len(r.stmts) == r.failAt {
		return pgconn.CommandTag{}, errors.New("permission denied")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func TestEnsureSchema(t *testing.T) {
	db := &recordingExecer{}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	if len(db.stmts) != len(schemaStatements) {
		t.Fatalf("executed %d statements, want %d", len(db.stmts), len(schemaStatements))
	}
	if !strings.Contains(db.stmts[0], "CREATE TABLE IF NOT EXISTS books") {
		t.Errorf("first statement = %q, want books table", db.stmts[0])
	}
	for _, col := range []string{"title", "author", "rating", "num_ratings", "run_id", "scraped_at"} {
		if !strings.Contains(db.stmts[0], col) {
			t.Errorf("books table missing column %q", col)
		}
	}
}

func TestEnsureSchema_Error(t *testing.T) {
	db := &recordingExecer{failAt: 1}
	err := EnsureSchema(context.Background(), db)
	if err == nil {
		t.Fatal("EnsureSchema() expected error")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("error = %v, want wrapped cause", err)
	}
	if len(db.stmts) != 1 {
		t.Errorf("executed %d statements after failure, want 1", len(db.stmts))
	}
}

// Package testutil provides shared helpers for service and router tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/avezina/todostack/internal/database"
)

// TestSecret signs tokens in tests.
const TestSecret = "test-signing-secret"

// SetupTestDB opens an in-memory SQLite database with the full schema
// applied. The pool is pinned to a single connection so every query sees
// the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

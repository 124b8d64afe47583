package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"nutriplan/internal/database"
)

// NewTestDB creates a throwaway SQLite database with all migrations applied.
// The backing file lives in the test's temp dir and the connection is closed
// when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db.SQL
}

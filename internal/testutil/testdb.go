package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/ddtrack/internal/db"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// It holds the seeded store: property 1 with the 28-item default checklist
// and the default template. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewEmptyTestDB is NewTestDB with the seeded property removed. The default
// template stays.
func NewEmptyTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database := NewTestDB(t)
	if _, err := database.Exec(`DELETE FROM properties`); err != nil {
		t.Fatalf("failed to clear seeded property: %v", err)
	}
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/templui/focusflow/internal/db"
)

// New returns a migrated database in a temp directory, closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	return conn
}

// CreateUser inserts a bare user row so owned records satisfy foreign keys.
func CreateUser(t testing.TB, conn *sqlx.DB, id string) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO users (id, email, created_at, updated_at)
	                     VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, id, id+"@example.com")
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
}

// Package testdb provides in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/helixml/criteria/internal/database"
)

// New creates an in-memory SQLite database that is closed when the test
// finishes.
func New(t *testing.T, opts ...database.Option) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:", opts...)
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// WithSchema creates an in-memory SQLite database and executes statements
// against it, typically CREATE TABLE and INSERT fixtures.
func WithSchema(t *testing.T, statements ...string) database.Database {
	t.Helper()
	db := New(t)
	session := db.Session(context.Background())
	for _, stmt := range statements {
		if err := session.Exec(stmt).Error; err != nil {
			t.Fatalf("testdb.WithSchema: %v\nSQL: %s", err, stmt)
		}
	}
	return db
}

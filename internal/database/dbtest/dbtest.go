// Package dbtest opens throwaway SQLite stores for package tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/iliyamo/birds-api/internal/config"
	"github.com/iliyamo/birds-api/internal/database"
)

// Pool mirrors the service defaults closely enough for tests.
var Pool = config.DBPoolConfig{
	MaxOpenConns:    4,
	MaxIdleConns:    4,
	ConnMaxLifetime: time.Minute,
	PingTimeout:     5 * time.Second,
}

// URI returns a sqlite:// URI for a fresh file under t.TempDir().
func URI(t testing.TB) string {
	t.Helper()
	return "sqlite:///" + filepath.Join(t.TempDir(), "birds.db")
}

// Open connects to a fresh file-backed store with the birds table created.
// The handle is closed when the test ends.
func Open(t testing.TB) (*sql.DB, database.Dialect) {
	t.Helper()
	ctx := context.Background()
	db, d, err := database.Open(ctx, URI(t), Pool)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.EnsureSchema(ctx, db, d); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db, d
}

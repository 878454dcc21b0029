// Package migrationtest opens throwaway, fully migrated databases for tests.
package migrationtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/ventstock/internal/migration"
	"github.com/fekuna/ventstock/pkg/database/sqlite"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/jmoiron/sqlx"
)

func OpenDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlite.NewSQLite(&sqlite.Config{Path: filepath.Join(t.TempDir(), "inventory.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := migration.NewMigrator(db, logger.NewNop()).Up(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

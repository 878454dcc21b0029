// Package migration keeps the catalog schema current. Applied versions are
// recorded in schema_migrations; each step runs in its own transaction and
// is idempotent, so databases upgraded by older builds are handled too.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, tx *sqlx.Tx) error
}

type Migrator struct {
	db         *sqlx.DB
	migrations []Migration
	logger     logger.ZapLogger
}

func NewMigrator(db *sqlx.DB, log logger.ZapLogger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: All(),
		logger:     log,
	}
}

// All is the ordered migration list for the inventory database.
func All() []Migration {
	return []Migration{
		{Version: 1, Name: "create_fans", Up: createTable(fansTable)},
		{Version: 2, Name: "create_sheet_metal", Up: createTable(sheetMetalTable)},
		{Version: 3, Name: "create_flexible", Up: createTable(flexibleTable)},
		{Version: 4, Name: "fans_add_description", Up: addColumn("fans", "description", "TEXT")},
		{Version: 5, Name: "fans_add_catalog_file_path", Up: addColumn("fans", "catalog_file_path", "TEXT")},
		{Version: 6, Name: "sheet_metal_drop_legacy_columns", Up: rebuildTable(sheetMetalTable)},
		{Version: 7, Name: "flexible_drop_legacy_columns", Up: rebuildTable(flexibleTable)},
	}
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	_, err := m.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            applied_at DATETIME NOT NULL
        )
    `)
	if err != nil {
		return 0, apperror.Persistence("create schema_migrations", err)
	}

	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, mig := range m.migrations {
		if mig.Version <= current {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return applied, err
		}
		applied++
		m.logger.Info("Applied schema migration",
			zap.Int("version", mig.Version),
			zap.String("name", mig.Name),
		)
	}
	return applied, nil
}

// Version returns the highest applied migration, 0 for a fresh database.
func (m *Migrator) Version(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := m.db.GetContext(ctx, &v, `SELECT MAX(version) FROM schema_migrations`); err != nil {
		return 0, apperror.Persistence("read schema version", err)
	}
	return int(v.Int64), nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Persistence("begin migration", err)
	}
	defer tx.Rollback()

	if err := mig.Up(ctx, tx); err != nil {
		return apperror.Persistence(fmt.Sprintf("migration %d (%s)", mig.Version, mig.Name), err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		mig.Version, mig.Name, time.Now().UTC(),
	)
	if err != nil {
		return apperror.Persistence("record migration", err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Persistence("commit migration", err)
	}
	return nil
}

func createTable(def tableDef) func(ctx context.Context, tx *sqlx.Tx) error {
	return func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, def.createSQL(def.name, true))
		return err
	}
}

func addColumn(table, column, colType string) func(ctx context.Context, tx *sqlx.Tx) error {
	return func(ctx context.Context, tx *sqlx.Tx) error {
		cols, err := tableColumns(ctx, tx, table)
		if err != nil {
			return err
		}
		for _, c := range cols {
			if c == column {
				return nil
			}
		}
		_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, colType))
		if err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
}

// rebuildTable recreates def's table when it carries columns the current
// shape no longer has. Rows are copied by column name and the
// AUTOINCREMENT high-water mark is kept so ids are never reused.
func rebuildTable(def tableDef) func(ctx context.Context, tx *sqlx.Tx) error {
	return func(ctx context.Context, tx *sqlx.Tx) error {
		legacy, err := tableColumns(ctx, tx, def.name)
		if err != nil {
			return err
		}

		stale := false
		for _, c := range legacy {
			if !def.hasColumn(c) {
				stale = true
				break
			}
		}
		if !stale {
			return nil
		}

		tmp := def.name + "_new"
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+tmp); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, def.createSQL(tmp, false)); err != nil {
			return fmt.Errorf("create %s: %w", tmp, err)
		}

		seq, err := sequenceOf(ctx, tx, def.name)
		if err != nil {
			return err
		}

		cols, exprs := def.copyExprs(legacy)
		if cols != "" {
			copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", tmp, cols, exprs, def.name)
			if _, err := tx.ExecContext(ctx, copySQL); err != nil {
				return fmt.Errorf("copy %s rows: %w", def.name, err)
			}
		}

		if _, err := tx.ExecContext(ctx, "DROP TABLE "+def.name); err != nil {
			return fmt.Errorf("drop %s: %w", def.name, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", tmp, def.name)); err != nil {
			return fmt.Errorf("rename %s: %w", tmp, err)
		}

		return restoreSequence(ctx, tx, def.name, seq)
	}
}

func tableColumns(ctx context.Context, tx *sqlx.Tx, table string) ([]string, error) {
	var cols []string
	if err := tx.SelectContext(ctx, &cols, `SELECT name FROM pragma_table_info(?)`, table); err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	return cols, nil
}

// sequenceOf reads the AUTOINCREMENT counter. sqlite_sequence exists here
// because the rebuild target has just been created with AUTOINCREMENT.
func sequenceOf(ctx context.Context, tx *sqlx.Tx, table string) (int64, error) {
	var seq int64
	err := tx.GetContext(ctx, &seq, `SELECT seq FROM sqlite_sequence WHERE name = ?`, table)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s sequence: %w", table, err)
	}
	return seq, nil
}

func restoreSequence(ctx context.Context, tx *sqlx.Tx, table string, seq int64) error {
	if seq <= 0 {
		return nil
	}
	res, err := tx.ExecContext(ctx, `UPDATE sqlite_sequence SET seq = ? WHERE name = ? AND seq < ?`, seq, table, seq)
	if err != nil {
		return fmt.Errorf("restore %s sequence: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = tx.ExecContext(ctx, `
        INSERT INTO sqlite_sequence (name, seq)
        SELECT ?, ? WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = ?)
    `, table, seq, table)
	if err != nil {
		return fmt.Errorf("restore %s sequence: %w", table, err)
	}
	return nil
}

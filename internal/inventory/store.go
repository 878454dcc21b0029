// Package inventory wires the three catalogs onto one migrated database.
package inventory

import (
	"context"
	"fmt"

	"github.com/fekuna/ventstock/internal/fan"
	fanRepo "github.com/fekuna/ventstock/internal/fan/repository"
	fanUC "github.com/fekuna/ventstock/internal/fan/usecase"
	"github.com/fekuna/ventstock/internal/flexible"
	flexibleRepo "github.com/fekuna/ventstock/internal/flexible/repository"
	flexibleUC "github.com/fekuna/ventstock/internal/flexible/usecase"
	"github.com/fekuna/ventstock/internal/migration"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/sheetmetal"
	sheetMetalRepo "github.com/fekuna/ventstock/internal/sheetmetal/repository"
	sheetMetalUC "github.com/fekuna/ventstock/internal/sheetmetal/usecase"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Store struct {
	DB         *sqlx.DB
	Fans       fan.UseCase
	SheetMetal sheetmetal.UseCase
	Flexible   flexible.UseCase

	schemaVersion int
}

// Open migrates db to the current schema and returns a store over it.
// The caller keeps ownership of db.
func Open(ctx context.Context, db *sqlx.DB, log logger.ZapLogger) (*Store, error) {
	m := migration.NewMigrator(db, log)
	applied, err := m.Up(ctx)
	if err != nil {
		log.Error("Failed to migrate inventory database", zap.Error(err))
		return nil, err
	}
	version, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("Inventory database ready",
		zap.Int("schema_version", version),
		zap.Int("migrations_applied", applied),
	)

	return &Store{
		DB:            db,
		Fans:          fanUC.NewFanUseCase(fanRepo.NewSQLiteRepository(db), log),
		SheetMetal:    sheetMetalUC.NewSheetMetalUseCase(sheetMetalRepo.NewSQLiteRepository(db), log),
		Flexible:      flexibleUC.NewFlexibleUseCase(flexibleRepo.NewSQLiteRepository(db), log),
		schemaVersion: version,
	}, nil
}

func (s *Store) SchemaVersion() int { return s.schemaVersion }

// Search runs a catalog search and returns the rows as Items, in the
// catalog's list order. A blank term lists the whole catalog.
func (s *Store) Search(ctx context.Context, catalog model.Catalog, term string) ([]model.Item, error) {
	switch catalog {
	case model.CatalogFans:
		rows, err := s.Fans.SearchFans(ctx, term)
		if err != nil {
			return nil, err
		}
		items := make([]model.Item, len(rows))
		for i := range rows {
			items[i] = &rows[i]
		}
		return items, nil
	case model.CatalogSheetMetal:
		rows, err := s.SheetMetal.SearchSheetMetal(ctx, term)
		if err != nil {
			return nil, err
		}
		items := make([]model.Item, len(rows))
		for i := range rows {
			items[i] = &rows[i]
		}
		return items, nil
	case model.CatalogFlexible:
		rows, err := s.Flexible.SearchFlexible(ctx, term)
		if err != nil {
			return nil, err
		}
		items := make([]model.Item, len(rows))
		for i := range rows {
			items[i] = &rows[i]
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown catalog %q", catalog)
}

// Get returns (nil, nil) when the id is absent from the catalog.
func (s *Store) Get(ctx context.Context, catalog model.Catalog, id int64) (model.Item, error) {
	switch catalog {
	case model.CatalogFans:
		f, err := s.Fans.GetFan(ctx, id)
		if err != nil || f == nil {
			return nil, err
		}
		return f, nil
	case model.CatalogSheetMetal:
		sm, err := s.SheetMetal.GetSheetMetal(ctx, id)
		if err != nil || sm == nil {
			return nil, err
		}
		return sm, nil
	case model.CatalogFlexible:
		fx, err := s.Flexible.GetFlexible(ctx, id)
		if err != nil || fx == nil {
			return nil, err
		}
		return fx, nil
	}
	return nil, fmt.Errorf("unknown catalog %q", catalog)
}

// Delete is idempotent for every catalog.
func (s *Store) Delete(ctx context.Context, catalog model.Catalog, id int64) error {
	switch catalog {
	case model.CatalogFans:
		return s.Fans.DeleteFan(ctx, id)
	case model.CatalogSheetMetal:
		return s.SheetMetal.DeleteSheetMetal(ctx, id)
	case model.CatalogFlexible:
		return s.Flexible.DeleteFlexible(ctx, id)
	}
	return fmt.Errorf("unknown catalog %q", catalog)
}

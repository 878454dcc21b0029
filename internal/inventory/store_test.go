package inventory

import (
	"context"
	"path/filepath"
	"testing"

	fanDTO "github.com/fekuna/ventstock/internal/fan/dto"
	flexibleDTO "github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/model"
	sheetMetalDTO "github.com/fekuna/ventstock/internal/sheetmetal/dto"
	"github.com/fekuna/ventstock/pkg/database/sqlite"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: filepath.Join(t.TempDir(), "inventory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := Open(context.Background(), db, logger.NewNop())
	require.NoError(t, err)
	return s
}

func TestOpenMigratesAndReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := sqlite.NewSQLite(&sqlite.Config{Path: path})
	require.NoError(t, err)
	s, err := Open(ctx, db, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 7, s.SchemaVersion())

	created, err := s.Fans.CreateFan(ctx, &fanDTO.CreateFanInput{FanFields: fanDTO.FanFields{
		Name:        "Axial-300",
		PriceRetail: decimal.NewFromInt(60),
	}})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.NewSQLite(&sqlite.Config{Path: path})
	require.NoError(t, err)
	defer db.Close()
	s, err = Open(ctx, db, logger.NewNop())
	require.NoError(t, err)

	item, err := s.Get(ctx, model.CatalogFans, created.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, created.ID, item.ItemID())
}

func TestSearchAcrossCatalogs(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	thickness := "0.5mm"
	_, err := s.SheetMetal.CreateSheetMetal(ctx, &sheetMetalDTO.CreateSheetMetalInput{
		SheetMetalFields: sheetMetalDTO.SheetMetalFields{Thickness: &thickness, Cost: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)

	diameter := "150"
	_, err = s.Flexible.CreateFlexible(ctx, &flexibleDTO.CreateFlexibleInput{
		FlexibleFields: flexibleDTO.FlexibleFields{Diameter: &diameter, Meter: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	for _, c := range model.Catalogs {
		items, err := s.Search(ctx, c, "")
		require.NoError(t, err)
		for _, it := range items {
			assert.Equal(t, c, it.Catalog())
		}
	}

	items, err := s.Search(ctx, model.CatalogSheetMetal, "0.5")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = s.Search(ctx, model.CatalogFlexible, "0.5")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.Search(ctx, model.Catalog("ducts"), "")
	assert.Error(t, err)
}

func TestGetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	for _, c := range model.Catalogs {
		item, err := s.Get(ctx, c, 12345)
		require.NoError(t, err)
		assert.Nil(t, item)
		assert.NoError(t, s.Delete(ctx, c, 12345))
	}
}

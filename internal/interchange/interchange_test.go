package interchange

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	fanDTO "github.com/fekuna/ventstock/internal/fan/dto"
	flexibleDTO "github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/inventory"
	"github.com/fekuna/ventstock/internal/migration/migrationtest"
	"github.com/fekuna/ventstock/internal/model"
	sheetMetalDTO "github.com/fekuna/ventstock/internal/sheetmetal/dto"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seededStore(t *testing.T) *inventory.Store {
	t.Helper()
	ctx := context.Background()
	store, err := inventory.Open(ctx, migrationtest.OpenDB(t), logger.NewNop())
	require.NoError(t, err)

	_, err = store.Fans.CreateFan(ctx, &fanDTO.CreateFanInput{FanFields: fanDTO.FanFields{
		Name:            "Axial-300",
		Airflow:         strPtr("2500 m3/h"),
		CatalogFilePath: strPtr("/docs/axial.pdf"),
		PriceWholesale:  decimal.RequireFromString("40.25"),
		PriceRetail:     decimal.RequireFromString("60"),
		Quantity:        10,
	}})
	require.NoError(t, err)

	_, err = store.SheetMetal.CreateSheetMetal(ctx, &sheetMetalDTO.CreateSheetMetalInput{
		SheetMetalFields: sheetMetalDTO.SheetMetalFields{Thickness: strPtr("0.5mm"), Cost: decimal.RequireFromString("12.5")},
	})
	require.NoError(t, err)

	_, err = store.Flexible.CreateFlexible(ctx, &flexibleDTO.CreateFlexibleInput{
		FlexibleFields: flexibleDTO.FlexibleFields{Diameter: strPtr("150"), Collection: strPtr("لفة 10 م"), Meter: decimal.RequireFromString("2.75")},
	})
	require.NoError(t, err)
	return store
}

func TestDumpRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	snap, err := Dump(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, snap.Version)
	assert.NotEqual(t, uuid.Nil, snap.ExportID)
	assert.Equal(t, map[model.Catalog]int{
		model.CatalogFans:       1,
		model.CatalogSheetMetal: 1,
		model.CatalogFlexible:   1,
	}, snap.Counts())

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, WriteFile(path, snap))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ExportID, got.ExportID)
	assert.True(t, snap.ExportDate.Equal(got.ExportDate))

	require.Len(t, got.Fans, 1)
	f, want := got.Fans[0], snap.Fans[0]
	assert.Equal(t, want.ID, f.ID)
	assert.Equal(t, want.Name, f.Name)
	assert.Equal(t, *want.Airflow, *f.Airflow)
	assert.Nil(t, f.Description)
	assert.Equal(t, "/docs/axial.pdf", *f.CatalogFilePath)
	assert.True(t, want.PriceWholesale.Equal(f.PriceWholesale))
	assert.True(t, want.PriceRetail.Equal(f.PriceRetail))
	assert.Equal(t, want.Quantity, f.Quantity)
	assert.True(t, want.CreatedAt.Equal(f.CreatedAt))
	assert.True(t, want.UpdatedAt.Equal(f.UpdatedAt))

	require.Len(t, got.SheetMetal, 1)
	assert.True(t, got.SheetMetal[0].Cost.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.5mm", *got.SheetMetal[0].Thickness)

	require.Len(t, got.Flexible, 1)
	assert.Equal(t, "لفة 10 م", *got.Flexible[0].Collection)
	assert.True(t, got.Flexible[0].Meter.Equal(decimal.RequireFromString("2.75")))
}

func TestWriteFileUsesExpectedKeys(t *testing.T) {
	snap, err := Dump(context.Background(), seededStore(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, WriteFile(path, snap))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"fans", "sheet_metal", "flexible", "export_date", "version", "export_id"} {
		assert.Contains(t, raw, key)
	}

	var fans []map[string]any
	require.NoError(t, json.Unmarshal(raw["fans"], &fans))
	for _, key := range []string{"id", "name", "description", "airflow", "catalog_file_path", "price_wholesale", "price_retail", "quantity", "created_at", "updated_at"} {
		assert.Contains(t, fans[0], key)
	}
}

func TestReadFileRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2.0","fans":[]}`), 0o644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

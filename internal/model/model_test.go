package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanUnitPrice(t *testing.T) {
	f := &Fan{
		PriceWholesale: decimal.RequireFromString("40.00"),
		PriceRetail:    decimal.RequireFromString("60.00"),
	}

	assert.True(t, f.UnitPrice(TierRetail).Equal(decimal.NewFromInt(60)))
	assert.True(t, f.UnitPrice(TierWholesale).Equal(decimal.NewFromInt(40)))
}

func TestParsePriceTier(t *testing.T) {
	tier, err := ParsePriceTier(" Wholesale ")
	require.NoError(t, err)
	assert.Equal(t, TierWholesale, tier)

	_, err = ParsePriceTier("vip")
	assert.Error(t, err)
}

func TestItemsImplementCatalogItem(t *testing.T) {
	desc := "galvanized"
	items := []Item{
		&Fan{BaseModel: BaseModel{ID: 1}, Name: "Axial-300"},
		&SheetMetal{BaseModel: BaseModel{ID: 2}, Extra: &desc},
		&Flexible{BaseModel: BaseModel{ID: 3}},
	}

	assert.Equal(t, CatalogFans, items[0].Catalog())
	assert.Equal(t, int64(2), items[1].ItemID())
	assert.Contains(t, items[1].SearchText(), "galvanized")
	assert.Equal(t, CatalogFlexible, items[2].Catalog())
}

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog("sheet-metal")
	require.NoError(t, err)
	assert.Equal(t, CatalogSheetMetal, c)

	_, err = ParseCatalog("ducts")
	assert.Error(t, err)
}

package model

import "github.com/shopspring/decimal"

type Fan struct {
	BaseModel
	Name            string          `db:"name" json:"name"`
	Description     *string         `db:"description" json:"description"`
	Airflow         *string         `db:"airflow" json:"airflow"`
	CatalogFilePath *string         `db:"catalog_file_path" json:"catalog_file_path"`
	PriceWholesale  decimal.Decimal `db:"price_wholesale" json:"price_wholesale"`
	PriceRetail     decimal.Decimal `db:"price_retail" json:"price_retail"`
	Quantity        int             `db:"quantity" json:"quantity"`
}

func (f *Fan) Catalog() Catalog { return CatalogFans }

func (f *Fan) SearchText() []string {
	return []string{f.Name, deref(f.Description), deref(f.Airflow)}
}

// UnitPrice returns the price for the given tier.
func (f *Fan) UnitPrice(tier PriceTier) decimal.Decimal {
	if tier == TierWholesale {
		return f.PriceWholesale
	}
	return f.PriceRetail
}

// StockAdjustment records one AdjustQuantity call.
type StockAdjustment struct {
	FanID          int64
	QuantityChange int
	QuantityBefore int
	QuantityAfter  int
}

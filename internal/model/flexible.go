package model

import "github.com/shopspring/decimal"

type Flexible struct {
	BaseModel
	Description *string         `db:"description" json:"description"`
	Diameter    *string         `db:"diameter" json:"diameter"`
	Collection  *string         `db:"collection" json:"collection"`
	Meter       decimal.Decimal `db:"meter" json:"meter"` // price per meter
}

func (f *Flexible) Catalog() Catalog { return CatalogFlexible }

func (f *Flexible) SearchText() []string {
	return []string{deref(f.Description), deref(f.Diameter), deref(f.Collection)}
}

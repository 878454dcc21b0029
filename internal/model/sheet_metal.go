package model

import "github.com/shopspring/decimal"

type SheetMetal struct {
	BaseModel
	Thickness   *string         `db:"thickness" json:"thickness"`
	Dimensions  *string         `db:"dimensions" json:"dimensions"`
	Measurement *string         `db:"measurement" json:"measurement"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Extra       *string         `db:"extra" json:"extra"` // insulation / extra note
}

func (s *SheetMetal) Catalog() Catalog { return CatalogSheetMetal }

func (s *SheetMetal) SearchText() []string {
	return []string{deref(s.Thickness), deref(s.Dimensions), deref(s.Measurement), deref(s.Extra)}
}

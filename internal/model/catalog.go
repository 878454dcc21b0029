package model

import (
	"fmt"
	"strings"
)

type Catalog string

const (
	CatalogFans       Catalog = "fans"
	CatalogSheetMetal Catalog = "sheet_metal"
	CatalogFlexible   Catalog = "flexible"
)

var Catalogs = []Catalog{CatalogFans, CatalogSheetMetal, CatalogFlexible}

func ParseCatalog(s string) (Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fans", "fan":
		return CatalogFans, nil
	case "sheet_metal", "sheet-metal", "sheetmetal":
		return CatalogSheetMetal, nil
	case "flexible", "flex":
		return CatalogFlexible, nil
	}
	return "", fmt.Errorf("unknown catalog %q", s)
}

// Item is implemented by *Fan, *SheetMetal and *Flexible.
type Item interface {
	ItemID() int64
	Catalog() Catalog
	// SearchText lists the free-text fields searched by the catalog.
	SearchText() []string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package dto

type SheetMetalFilters struct {
	SearchQuery string // matched against thickness, dimensions, measurement and extra
}

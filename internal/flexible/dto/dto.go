package dto

type FlexibleFilters struct {
	SearchQuery string // matched against description, diameter and collection
}

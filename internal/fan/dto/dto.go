package dto

type FanFilters struct {
	SearchQuery string // matched against name, description and airflow
}

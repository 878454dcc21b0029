package dto

import (
	"github.com/fekuna/ventstock/internal/validation"
	"github.com/shopspring/decimal"
)

type SheetMetalFields struct {
	Thickness   *string
	Dimensions  *string
	Measurement *string
	Cost        decimal.Decimal
	Extra       *string
}

type CreateSheetMetalInput struct {
	SheetMetalFields
}

type UpdateSheetMetalInput struct {
	ID int64
	SheetMetalFields
}

func (f *SheetMetalFields) Validate() error {
	return validation.NonNegative("cost", f.Cost)
}

type SheetMetalForm struct {
	Thickness   string
	Dimensions  string
	Measurement string
	Cost        string
	Extra       string
}

func ParseSheetMetalForm(form SheetMetalForm) (*SheetMetalFields, error) {
	cost, err := validation.Money("cost", form.Cost)
	if err != nil {
		return nil, err
	}
	return &SheetMetalFields{
		Thickness:   validation.Optional(form.Thickness),
		Dimensions:  validation.Optional(form.Dimensions),
		Measurement: validation.Optional(form.Measurement),
		Cost:        cost,
		Extra:       validation.Optional(form.Extra),
	}, nil
}

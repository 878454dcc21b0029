package dto

import (
	"github.com/fekuna/ventstock/internal/validation"
	"github.com/shopspring/decimal"
)

type FlexibleFields struct {
	Description *string
	Diameter    *string
	Collection  *string
	Meter       decimal.Decimal // price per meter
}

type CreateFlexibleInput struct {
	FlexibleFields
}

type UpdateFlexibleInput struct {
	ID int64
	FlexibleFields
}

func (f *FlexibleFields) Validate() error {
	return validation.NonNegative("meter", f.Meter)
}

type FlexibleForm struct {
	Description string
	Diameter    string
	Collection  string
	Meter       string
}

func ParseFlexibleForm(form FlexibleForm) (*FlexibleFields, error) {
	meter, err := validation.Money("meter", form.Meter)
	if err != nil {
		return nil, err
	}
	return &FlexibleFields{
		Description: validation.Optional(form.Description),
		Diameter:    validation.Optional(form.Diameter),
		Collection:  validation.Optional(form.Collection),
		Meter:       meter,
	}, nil
}

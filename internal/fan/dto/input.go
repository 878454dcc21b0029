package dto

import (
	"strings"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/validation"
	"github.com/shopspring/decimal"
)

type FanFields struct {
	Name            string
	Description     *string
	Airflow         *string
	CatalogFilePath *string
	PriceWholesale  decimal.Decimal
	PriceRetail     decimal.Decimal
	Quantity        int
}

type CreateFanInput struct {
	FanFields
}

type UpdateFanInput struct {
	ID int64
	FanFields
}

func (f *FanFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return apperror.Validation("name", "is required")
	}
	if err := validation.NonNegative("price_wholesale", f.PriceWholesale); err != nil {
		return err
	}
	if err := validation.NonNegative("price_retail", f.PriceRetail); err != nil {
		return err
	}
	if f.Quantity < 0 {
		return apperror.Validation("quantity", "must not be negative")
	}
	return nil
}

// FanForm is the raw text of the fan entry form.
type FanForm struct {
	Name            string
	Description     string
	Airflow         string
	CatalogFilePath string
	PriceWholesale  string
	PriceRetail     string
	Quantity        string
}

// ParseFanForm converts form text into validated fields. Fields are checked
// in form order and the first failure is returned.
func ParseFanForm(form FanForm) (*FanFields, error) {
	name, err := validation.Required("name", form.Name)
	if err != nil {
		return nil, err
	}
	wholesale, err := validation.Money("price_wholesale", form.PriceWholesale)
	if err != nil {
		return nil, err
	}
	retail, err := validation.Money("price_retail", form.PriceRetail)
	if err != nil {
		return nil, err
	}
	qty, err := validation.Quantity("quantity", form.Quantity)
	if err != nil {
		return nil, err
	}

	return &FanFields{
		Name:            name,
		Description:     validation.Optional(form.Description),
		Airflow:         validation.Optional(form.Airflow),
		CatalogFilePath: validation.Optional(form.CatalogFilePath),
		PriceWholesale:  wholesale,
		PriceRetail:     retail,
		Quantity:        qty,
	}, nil
}

package model

import (
	"fmt"
	"strings"
)

type PriceTier string

const (
	TierRetail    PriceTier = "retail"
	TierWholesale PriceTier = "wholesale"
)

func ParsePriceTier(s string) (PriceTier, error) {
	switch PriceTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierRetail:
		return TierRetail, nil
	case TierWholesale:
		return TierWholesale, nil
	}
	return "", fmt.Errorf("unknown price tier %q", s)
}

func (t PriceTier) Valid() bool {
	return t == TierRetail || t == TierWholesale
}

func (t PriceTier) Label() string {
	if t == TierWholesale {
		return "Wholesale"
	}
	return "Retail"
}

package booking

import (
	"resortly/internal/pkg/money"
)

// PriceBreakdown is the valuation result for a selection set.
type PriceBreakdown struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	TaxRate     float64 `json:"taxRate"`
	Insurance   float64 `json:"insurance"`
	FinalAmount float64 `json:"finalAmount"`
}

// ComputeAmount turns a subtotal and discount into the charged amount:
// (subtotal - discount) * (1 + taxRate) + insurance, at 2 decimals.
// The taxed base is floored at 0 first, so an oversized discount can
// never push the amount negative.
func ComputeAmount(subtotal, discount, taxRate, insurance float64) float64 {
	base := subtotal - discount
	if base < 0 {
		base = 0
	}
	return money.Round2(base*(1+taxRate) + insurance)
}

// NewPriceBreakdown bundles the valuation inputs with the computed
// final amount.
func NewPriceBreakdown(subtotal, discount, taxRate, insurance float64) PriceBreakdown {
	return PriceBreakdown{
		Subtotal:    money.Round2(subtotal),
		Discount:    money.Round2(discount),
		TaxRate:     taxRate,
		Insurance:   insurance,
		FinalAmount: ComputeAmount(subtotal, discount, taxRate, insurance),
	}
}

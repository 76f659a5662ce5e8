package service

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PriceBreakdown is the server-computed price of a cart. All amounts are in
// minor units. Invariant: GrandTotal = Subtotal + TaxAmount +
// DeliveryCharge - DiscountAmount, and GrandTotal >= 0.
type PriceBreakdown struct {
	Subtotal       int64
	TaxAmount      int64
	DeliveryCharge int64
	DiscountAmount int64
	GrandTotal     int64
	FreeDelivery   bool
	LineTaxes      []int64 // per-line tax, parallel to the priced lines
}

// MarshalJSON converts minor units to decimal for API responses
func (p PriceBreakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Subtotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DeliveryCharge float64 `json:"delivery_charge"`
		DiscountAmount float64 `json:"discount_amount"`
		GrandTotal     float64 `json:"grand_total"`
		FreeDelivery   bool    `json:"free_delivery"`
	}{
		Subtotal:       float64(p.Subtotal) / 100,
		TaxAmount:      float64(p.TaxAmount) / 100,
		DeliveryCharge: float64(p.DeliveryCharge) / 100,
		DiscountAmount: float64(p.DiscountAmount) / 100,
		GrandTotal:     float64(p.GrandTotal) / 100,
		FreeDelivery:   p.FreeDelivery,
	})
}

var hundred = decimal.NewFromInt(100)

// LineTax computes the tax on one line's subtotal at the line's category
// rate, rounded to whole minor units. Rounding happens here, per line
// before summation, which is what makes mixed-category carts add up to the
// per-item GST amounts shown to the user.
func LineTax(lineSubtotal int64, taxRate float64) int64 {
	return decimal.NewFromInt(lineSubtotal).
		Mul(decimal.NewFromFloat(taxRate)).
		Div(hundred).
		Round(0).
		IntPart()
}

// CalculatePrice produces the authoritative price breakdown for a validated
// cart. Pure function: the caller supplies the delivery charge and an
// already-evaluated offer result (nil means no offer). Tax is per line at
// the line's category rate, never a blended average. The discount is
// clamped so the grand total cannot go negative.
func CalculatePrice(lines []EnrichedCartLine, zoneCharge int64, offer *OfferResult) PriceBreakdown {
	b := PriceBreakdown{
		DeliveryCharge: zoneCharge,
		LineTaxes:      make([]int64, len(lines)),
	}

	for i := range lines {
		lineSubtotal := lines[i].Subtotal()
		lineTax := LineTax(lineSubtotal, lines[i].TaxRate)
		b.Subtotal += lineSubtotal
		b.TaxAmount += lineTax
		b.LineTaxes[i] = lineTax
	}

	if offer != nil && offer.Valid {
		if offer.FreeDelivery {
			b.DeliveryCharge = 0
			b.FreeDelivery = true
		}
		b.DiscountAmount = offer.DiscountAmount
	}

	if max := b.Subtotal + b.TaxAmount + b.DeliveryCharge; b.DiscountAmount > max {
		b.DiscountAmount = max
	}

	b.GrandTotal = b.Subtotal + b.TaxAmount + b.DeliveryCharge - b.DiscountAmount
	return b
}

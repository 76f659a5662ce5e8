package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
)

func line(sizePrice int64, taxRate float64, qty int, addOnPrices ...int64) EnrichedCartLine {
	l := EnrichedCartLine{
		Line:      CartLine{Quantity: qty},
		TaxRate:   taxRate,
		SizePrice: sizePrice,
	}
	for _, p := range addOnPrices {
		l.AddOns = append(l.AddOns, EnrichedAddOn{Price: p})
	}
	return l
}

func TestLineTax(t *testing.T) {
	// 638.00 at 5% = 31.90 exactly
	assert.Equal(t, int64(3190), LineTax(63800, 5))

	// 99.99 at 2.5% = 2.49975, rounds to 2.50
	assert.Equal(t, int64(250), LineTax(9999, 2.5))

	// zero rate
	assert.Equal(t, int64(0), LineTax(63800, 0))
}

func TestCalculatePriceBasics(t *testing.T) {
	// (299 + 20) x 2 = 638.00 subtotal, 5% tax = 31.90, delivery 40
	lines := []EnrichedCartLine{line(29900, 5, 2, 2000)}

	b := CalculatePrice(lines, 4000, nil)

	assert.Equal(t, int64(63800), b.Subtotal)
	assert.Equal(t, int64(3190), b.TaxAmount)
	assert.Equal(t, int64(4000), b.DeliveryCharge)
	assert.Equal(t, int64(0), b.DiscountAmount)
	assert.Equal(t, int64(70990), b.GrandTotal)
	assert.Equal(t, []int64{3190}, b.LineTaxes)
}

func TestCalculatePriceFlatOffer(t *testing.T) {
	lines := []EnrichedCartLine{line(29900, 5, 2, 2000)}
	offer := &OfferResult{Valid: true, DiscountAmount: 10000}

	b := CalculatePrice(lines, 4000, offer)

	assert.Equal(t, int64(10000), b.DiscountAmount)
	assert.Equal(t, int64(60990), b.GrandTotal)
}

func TestCalculatePriceFreeDelivery(t *testing.T) {
	lines := []EnrichedCartLine{line(29900, 5, 2, 2000)}
	offer := &OfferResult{Valid: true, FreeDelivery: true}

	b := CalculatePrice(lines, 4000, offer)

	assert.True(t, b.FreeDelivery)
	assert.Equal(t, int64(0), b.DeliveryCharge)
	assert.Equal(t, int64(66990), b.GrandTotal)
}

func TestCalculatePriceMixedTaxRates(t *testing.T) {
	// Tax is per line at the category rate, rounded per line then summed
	lines := []EnrichedCartLine{
		line(9999, 5, 1),   // 99.99 x 5% = 5.00 (rounded from 4.9995)
		line(9999, 2.5, 1), // 99.99 x 2.5% = 2.50 (rounded from 2.49975)
		line(15000, 0, 1),  // beverages, untaxed
	}

	b := CalculatePrice(lines, 3000, nil)

	assert.Equal(t, int64(34998), b.Subtotal)
	assert.Equal(t, []int64{500, 250, 0}, b.LineTaxes)
	assert.Equal(t, int64(750), b.TaxAmount)
	assert.Equal(t, int64(38748), b.GrandTotal)
}

func TestCalculatePriceDiscountClamped(t *testing.T) {
	lines := []EnrichedCartLine{line(5000, 0, 1)}
	offer := &OfferResult{Valid: true, DiscountAmount: 99999}

	b := CalculatePrice(lines, 2000, offer)

	// Discount cannot push the total negative
	assert.Equal(t, int64(7000), b.DiscountAmount)
	assert.Equal(t, int64(0), b.GrandTotal)
}

func TestCalculatePriceInvalidOfferIgnored(t *testing.T) {
	lines := []EnrichedCartLine{line(5000, 0, 1)}
	offer := &OfferResult{Valid: false, DiscountAmount: 1000, FreeDelivery: true}

	b := CalculatePrice(lines, 2000, offer)

	assert.Equal(t, int64(0), b.DiscountAmount)
	assert.Equal(t, int64(2000), b.DeliveryCharge)
	assert.False(t, b.FreeDelivery)
}

func TestCalculatePriceInvariant(t *testing.T) {
	cases := []struct {
		lines  []EnrichedCartLine
		charge int64
		offer  *OfferResult
	}{
		{[]EnrichedCartLine{line(29900, 5, 2, 2000)}, 4000, nil},
		{[]EnrichedCartLine{line(9999, 2.5, 3)}, 0, &OfferResult{Valid: true, DiscountAmount: 500}},
		{[]EnrichedCartLine{line(100, 18, 1)}, 8000, &OfferResult{Valid: true, FreeDelivery: true}},
	}

	for _, tc := range cases {
		b := CalculatePrice(tc.lines, tc.charge, tc.offer)
		assert.Equal(t, b.Subtotal+b.TaxAmount+b.DeliveryCharge-b.DiscountAmount, b.GrandTotal)
		assert.GreaterOrEqual(t, b.GrandTotal, int64(0))
	}
}

func TestPercentageDiscountRounding(t *testing.T) {
	// 10% off 99.99 via the offer evaluator path: 9.999 rounds to 10.00
	offer := &entity.Offer{
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}

	result := EvaluateOffer(offer, testNow(), 9999, nil, nil, OfferUserHistory{})

	assert.True(t, result.Valid)
	assert.Equal(t, int64(1000), result.DiscountAmount)
}

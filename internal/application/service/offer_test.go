package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

func testNow() time.Time {
	return time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
}

func activeOffer() *entity.Offer {
	return &entity.Offer{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
}

func TestEvaluateOfferUnknownCode(t *testing.T) {
	result := EvaluateOffer(nil, testNow(), 50000, nil, nil, OfferUserHistory{})

	assert.False(t, result.Valid)
	assert.Equal(t, apperror.ReasonOfferInvalid, result.Reason)
}

func TestEvaluateOfferInactive(t *testing.T) {
	offer := activeOffer()
	offer.IsActive = false

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})

	assert.False(t, result.Valid)
}

func TestEvaluateOfferValidityWindow(t *testing.T) {
	offer := activeOffer()
	future := testNow().Add(24 * time.Hour)
	offer.ValidFrom = &future

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})
	assert.False(t, result.Valid)
	assert.Equal(t, "Offer is not active yet", result.Message)

	past := testNow().Add(-24 * time.Hour)
	offer.ValidFrom = nil
	offer.ValidTo = &past

	result = EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})
	assert.False(t, result.Valid)
	assert.Equal(t, "Offer has expired", result.Message)
}

func TestEvaluateOfferMinOrderValue(t *testing.T) {
	offer := activeOffer()
	offer.MinOrderValue = 50000

	result := EvaluateOffer(offer, testNow(), 49999, nil, nil, OfferUserHistory{})
	assert.False(t, result.Valid)

	result = EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferCategoryScope(t *testing.T) {
	offer := activeOffer()
	pizzas := uuid.New()
	offer.ApplicableCategoryID = &pizzas

	result := EvaluateOffer(offer, testNow(), 50000, []uuid.UUID{uuid.New()}, nil, OfferUserHistory{})
	assert.False(t, result.Valid)
	assert.Equal(t, apperror.ReasonOfferNotApplicable, result.Reason)

	result = EvaluateOffer(offer, testNow(), 50000, []uuid.UUID{pizzas}, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferItemScope(t *testing.T) {
	offer := activeOffer()
	margherita := uuid.New()
	offer.ApplicableItemID = &margherita

	result := EvaluateOffer(offer, testNow(), 50000, nil, []uuid.UUID{uuid.New()}, OfferUserHistory{})
	assert.False(t, result.Valid)

	result = EvaluateOffer(offer, testNow(), 50000, nil, []uuid.UUID{margherita}, OfferUserHistory{})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferFirstOrderOnly(t *testing.T) {
	offer := activeOffer()
	offer.FirstOrderOnly = true

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{PriorOrders: 1})
	assert.False(t, result.Valid)

	// No history: guests and genuinely new users pass
	result = EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferUsageCap(t *testing.T) {
	offer := activeOffer()
	offer.MaxUsesPerUser = 2

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{UsesOfCode: 2})
	assert.False(t, result.Valid)

	result = EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{UsesOfCode: 1})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferUnlimitedUses(t *testing.T) {
	offer := activeOffer()
	offer.MaxUsesPerUser = 0

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{UsesOfCode: 100})
	assert.True(t, result.Valid)
}

func TestEvaluateOfferPercentageCapped(t *testing.T) {
	offer := activeOffer()
	cap := int64(5000)
	offer.MaxDiscountAmount = &cap

	// 10% of 1000.00 is 100.00, capped at 50.00
	result := EvaluateOffer(offer, testNow(), 100000, nil, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
	assert.Equal(t, int64(5000), result.DiscountAmount)
}

func TestEvaluateOfferFlatCappedAtSubtotal(t *testing.T) {
	offer := activeOffer()
	offer.DiscountType = enum.DiscountTypeFlat
	offer.DiscountValue = decimal.NewFromInt(100) // 100.00

	result := EvaluateOffer(offer, testNow(), 5000, nil, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
	assert.Equal(t, int64(5000), result.DiscountAmount)
}

func TestEvaluateOfferFreeDelivery(t *testing.T) {
	offer := activeOffer()
	offer.DiscountType = enum.DiscountTypeFreeDelivery

	result := EvaluateOffer(offer, testNow(), 50000, nil, nil, OfferUserHistory{})
	assert.True(t, result.Valid)
	assert.True(t, result.FreeDelivery)
	assert.Equal(t, int64(0), result.DiscountAmount)
}

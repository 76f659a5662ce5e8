package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

// OfferResult is the outcome of evaluating an offer against a cart
type OfferResult struct {
	Valid          bool          `json:"valid"`
	Offer          *entity.Offer `json:"offer,omitempty"`
	DiscountAmount int64         `json:"-"` // minor units; 0 for free_delivery
	FreeDelivery   bool          `json:"free_delivery"`
	Reason         string        `json:"reason,omitempty"`
	Message        string        `json:"message,omitempty"`
}

// OfferUserHistory carries the per-user facts the eligibility checks need.
// For guest checkouts there is no history on record, so first-order and
// usage-cap checks cannot reject.
type OfferUserHistory struct {
	PriorOrders int64 // non-cancelled orders by this user
	UsesOfCode  int64 // non-cancelled orders by this user that applied this code
}

func invalidOffer(reason, message string) OfferResult {
	return OfferResult{Valid: false, Reason: reason, Message: message}
}

// EvaluateOffer runs the eligibility checks in order, short-circuiting on
// the first failure, then computes the discount. Pure function over the
// supplied facts; the cart's category and item ids decide scope matches.
func EvaluateOffer(offer *entity.Offer, now time.Time, subtotal int64, categoryIDs, itemIDs []uuid.UUID, history OfferUserHistory) OfferResult {
	if offer == nil {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer code not found")
	}
	if !offer.IsActive {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer is no longer active")
	}
	if offer.ValidFrom != nil && now.Before(*offer.ValidFrom) {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer is not active yet")
	}
	if offer.ValidTo != nil && now.After(*offer.ValidTo) {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer has expired")
	}
	if subtotal < offer.MinOrderValue {
		return invalidOffer(apperror.ReasonOfferInvalid, "Order value is below the offer minimum")
	}
	if offer.ApplicableCategoryID != nil && !containsID(categoryIDs, *offer.ApplicableCategoryID) {
		return invalidOffer(apperror.ReasonOfferNotApplicable, "Offer does not apply to any item in the cart")
	}
	if offer.ApplicableItemID != nil && !containsID(itemIDs, *offer.ApplicableItemID) {
		return invalidOffer(apperror.ReasonOfferNotApplicable, "Offer does not apply to any item in the cart")
	}
	if offer.FirstOrderOnly && history.PriorOrders > 0 {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer is valid on the first order only")
	}
	if offer.MaxUsesPerUser > 0 && history.UsesOfCode >= int64(offer.MaxUsesPerUser) {
		return invalidOffer(apperror.ReasonOfferInvalid, "Offer usage limit reached")
	}

	result := OfferResult{Valid: true, Offer: offer}

	switch offer.DiscountType {
	case enum.DiscountTypePercentage:
		discount := decimal.NewFromInt(subtotal).
			Mul(offer.DiscountValue).
			Div(hundred).
			Round(0).
			IntPart()
		if offer.MaxDiscountAmount != nil && discount > *offer.MaxDiscountAmount {
			discount = *offer.MaxDiscountAmount
		}
		result.DiscountAmount = discount
	case enum.DiscountTypeFlat:
		discount := offer.DiscountValue.Mul(hundred).Round(0).IntPart()
		if discount > subtotal {
			discount = subtotal
		}
		result.DiscountAmount = discount
	case enum.DiscountTypeFreeDelivery:
		result.FreeDelivery = true
	}

	return result
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// OfferService resolves offer codes and gathers the user history the
// evaluator needs
type OfferService struct {
	offerRepo repository.OfferRepository
	orderRepo repository.OrderRepository
}

// NewOfferService creates a new offer service
func NewOfferService(offerRepo repository.OfferRepository, orderRepo repository.OrderRepository) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		orderRepo: orderRepo,
	}
}

// ListActive returns offers currently open for use
func (s *OfferService) ListActive(ctx context.Context) ([]entity.Offer, error) {
	return s.offerRepo.ListActive(ctx)
}

// Evaluate resolves the code and evaluates it against the given cart facts.
// A failed evaluation is returned as an invalid OfferResult, not an error:
// at cart-display time the caller proceeds without a discount and surfaces
// the reason.
func (s *OfferService) Evaluate(ctx context.Context, code string, subtotal int64, categoryIDs, itemIDs []uuid.UUID, userID *uuid.UUID) (OfferResult, error) {
	offer, err := s.offerRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return OfferResult{}, err
	}

	var history OfferUserHistory
	if userID != nil && offer != nil {
		priorOrders, err := s.orderRepo.CountNonCancelledByUser(ctx, *userID)
		if err != nil {
			return OfferResult{}, err
		}
		uses, err := s.orderRepo.CountOfferUsesByUser(ctx, *userID, offer.ID)
		if err != nil {
			return OfferResult{}, err
		}
		history = OfferUserHistory{PriorOrders: priorOrders, UsesOfCode: uses}
	}

	return EvaluateOffer(offer, time.Now(), subtotal, categoryIDs, itemIDs, history), nil
}

// EvaluateForLines evaluates a code against an already-validated cart,
// deriving the subtotal and scope from the enriched lines
func (s *OfferService) EvaluateForLines(ctx context.Context, code string, lines []EnrichedCartLine, userID *uuid.UUID) (OfferResult, error) {
	var subtotal int64
	for i := range lines {
		subtotal += lines[i].Subtotal()
	}
	categoryIDs, itemIDs := cartScope(lines)
	return s.Evaluate(ctx, code, subtotal, categoryIDs, itemIDs, userID)
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

// CartLine is one item+size+add-ons+quantity tuple as submitted by a
// client. It deliberately carries no prices: every checkout revalidates and
// reprices against the live catalog, so a tampered client payload has
// nothing to tamper with.
type CartLine struct {
	ItemID   uuid.UUID   `json:"item_id"`
	SizeID   uuid.UUID   `json:"size_id"`
	AddOnIDs []uuid.UUID `json:"add_on_ids,omitempty"`
	Quantity int         `json:"quantity"`
}

// EnrichedAddOn is an add-on resolved against the catalog with its current
// name and price
type EnrichedAddOn struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"-"`
}

// EnrichedCartLine is a cart line resolved against live catalog data. It is
// never persisted; it is recomputed on every validation pass so stale
// prices cannot leak into an order.
type EnrichedCartLine struct {
	Line         CartLine        `json:"line"`
	ItemName     string          `json:"item_name"`
	ItemImage    *string         `json:"item_image,omitempty"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TaxRate      float64         `json:"tax_rate"`
	SizeName     string          `json:"size_name"`
	SizePrice    int64           `json:"-"`
	AddOns       []EnrichedAddOn `json:"add_ons,omitempty"`
}

// Subtotal returns (sizePrice + sum of add-on prices) x quantity in minor
// units
func (l *EnrichedCartLine) Subtotal() int64 {
	unit := l.SizePrice
	for _, a := range l.AddOns {
		unit += a.Price
	}
	return unit * int64(l.Line.Quantity)
}

// RejectedLine reports one cart line that failed validation, with enough
// context for the client to prune it
type RejectedLine struct {
	Index   int      `json:"index"`
	Line    CartLine `json:"line"`
	Reason  string   `json:"reason"`
	Message string   `json:"message"`
}

// ValidateCart partitions cart lines into valid enriched lines and rejected
// lines against the given catalog snapshot. Pure function: no side effects,
// no mutation of the input, deterministic for a fixed catalog. Add-on
// failures reject the entire line; partial substitution is not supported.
func ValidateCart(lines []CartLine, catalog map[uuid.UUID]*entity.MenuItem) ([]EnrichedCartLine, []RejectedLine) {
	valid := make([]EnrichedCartLine, 0, len(lines))
	var rejected []RejectedLine

	for i, line := range lines {
		item, ok := catalog[line.ItemID]
		if !ok || item == nil || !item.IsAvailable {
			rejected = append(rejected, RejectedLine{
				Index:   i,
				Line:    line,
				Reason:  apperror.ReasonItemUnavailable,
				Message: "Item is no longer available",
			})
			continue
		}

		size := item.SizeByID(line.SizeID)
		if size == nil || !size.IsAvailable {
			rejected = append(rejected, RejectedLine{
				Index:   i,
				Line:    line,
				Reason:  apperror.ReasonSizeUnavailable,
				Message: fmt.Sprintf("Selected size of %s is no longer available", item.Name),
			})
			continue
		}

		enriched := EnrichedCartLine{
			Line:         line,
			ItemName:     item.Name,
			ItemImage:    item.Image,
			CategoryID:   item.CategoryID,
			CategoryName: item.Category.Name,
			TaxRate:      item.Category.TaxRate,
			SizeName:     size.Name,
			SizePrice:    size.Price,
		}

		lineOK := true
		for _, addOnID := range line.AddOnIDs {
			addOn := item.AddOnByID(addOnID)
			if addOn == nil || !addOn.IsAvailable {
				rejected = append(rejected, RejectedLine{
					Index:   i,
					Line:    line,
					Reason:  apperror.ReasonAddOnUnavailable,
					Message: fmt.Sprintf("An add-on for %s is no longer available", item.Name),
				})
				lineOK = false
				break
			}
			enriched.AddOns = append(enriched.AddOns, EnrichedAddOn{
				ID:    addOn.ID,
				Name:  addOn.Name,
				Price: addOn.Price,
			})
		}
		if !lineOK {
			continue
		}

		valid = append(valid, enriched)
	}

	return valid, rejected
}

// CartService validates client carts against the live catalog and produces
// price estimates for display. Checkout re-runs the same validation inside
// the order builder; this service exists so the cart screen can prune
// unavailable lines before the user reaches checkout.
type CartService struct {
	catalogRepo repository.CatalogRepository
	zoneRepo    repository.DeliveryZoneRepository
}

// NewCartService creates a new cart service
func NewCartService(catalogRepo repository.CatalogRepository, zoneRepo repository.DeliveryZoneRepository) *CartService {
	return &CartService{
		catalogRepo: catalogRepo,
		zoneRepo:    zoneRepo,
	}
}

// ValidationResult is the outcome of validating (and optionally pricing) a
// client cart
type ValidationResult struct {
	ValidLines    []EnrichedCartLine `json:"valid_lines"`
	RejectedLines []RejectedLine     `json:"rejected_lines,omitempty"`
	Estimate      *PriceBreakdown    `json:"estimate,omitempty"`
}

// Validate resolves the cart against the current catalog and, when a
// delivery zone is supplied, attaches a price estimate for the valid
// partition. Rejected lines are reported, never silently dropped.
func (s *CartService) Validate(ctx context.Context, lines []CartLine, zoneID *uuid.UUID) (*ValidationResult, error) {
	if len(lines) == 0 {
		return nil, apperror.NewReasonError(400, apperror.ReasonCartEmpty, "Cart is empty")
	}

	catalog, err := s.fetchCatalog(ctx, lines)
	if err != nil {
		return nil, err
	}

	valid, rejected := ValidateCart(lines, catalog)
	result := &ValidationResult{
		ValidLines:    valid,
		RejectedLines: rejected,
	}

	if zoneID != nil && len(valid) > 0 {
		zone, err := s.zoneRepo.GetByID(ctx, *zoneID)
		if err != nil {
			return nil, err
		}
		if zone != nil {
			estimate := CalculatePrice(valid, zone.Charge, nil)
			result.Estimate = &estimate
		}
	}

	return result, nil
}

// fetchCatalog batch-loads the distinct items referenced by the cart
func (s *CartService) fetchCatalog(ctx context.Context, lines []CartLine) (map[uuid.UUID]*entity.MenuItem, error) {
	seen := make(map[uuid.UUID]bool, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			ids = append(ids, line.ItemID)
		}
	}

	items, err := s.catalogRepo.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[uuid.UUID]*entity.MenuItem, len(items))
	for i := range items {
		catalog[items[i].ID] = &items[i]
	}
	return catalog, nil
}

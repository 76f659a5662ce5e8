package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
	"github.com/zaikabox/zaikabox-api/pkg/utils"
)

// OrderService builds orders and drives their status state machine
type OrderService struct {
	orderRepo    repository.OrderRepository
	catalogRepo  repository.CatalogRepository
	addressRepo  repository.AddressRepository
	settingsRepo repository.SettingsRepository
	offerService *OfferService
	notifier     Notifier
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	addressRepo repository.AddressRepository,
	settingsRepo repository.SettingsRepository,
	offerService *OfferService,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		catalogRepo:  catalogRepo,
		addressRepo:  addressRepo,
		settingsRepo: settingsRepo,
		offerService: offerService,
		notifier:     notifier,
	}
}

// CreateOrderInput represents the create order input. It intentionally
// carries no prices: the client's own estimate is display-only and is never
// sent here.
type CreateOrderInput struct {
	UserID              *uuid.UUID // nil for guest orders
	AddressID           uuid.UUID
	Lines               []CartLine
	OfferCode           string
	SpecialInstructions *string
}

// CreateOrder revalidates the cart against the live catalog, reprices it
// from scratch and persists the order with immutable line snapshots, all
// within one transaction. Checkout is stricter than cart display: a single
// invalid line fails the whole order instead of being dropped.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewReasonError(400, apperror.ReasonCartEmpty, "Cart is empty")
	}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
	}

	// (1) Revalidate every line against the current catalog
	catalog, err := s.fetchCatalog(ctx, input.Lines)
	if err != nil {
		return nil, err
	}
	valid, rejected := ValidateCart(input.Lines, catalog)
	if len(rejected) > 0 {
		lineErrs := make([]apperror.LineError, len(rejected))
		for i, r := range rejected {
			lineErrs[i] = apperror.LineError{Index: r.Index, Reason: r.Reason, Message: r.Message}
		}
		return nil, apperror.NewCartInvalidError(lineErrs)
	}

	// (2) Restaurant must be open right now
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if open, reason := settings.IsOpenAt(time.Now()); !open {
		return nil, apperror.NewReasonError(422, apperror.ReasonRestaurantClosed, reason)
	}

	// (3) Resolve the address and verify ownership
	address, err := s.addressRepo.GetByIDForUser(ctx, input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, apperror.NewReasonError(404, apperror.ReasonAddressNotFound, "Address not found")
	}

	// (4) An offer code supplied at checkout must be valid; it is not
	// silently ignored like at cart-display time
	var subtotal int64
	for i := range valid {
		subtotal += valid[i].Subtotal()
	}

	var offerResult *OfferResult
	var offerID *uuid.UUID
	if input.OfferCode != "" {
		categoryIDs, itemIDs := cartScope(valid)
		result, err := s.offerService.Evaluate(ctx, input.OfferCode, subtotal, categoryIDs, itemIDs, input.UserID)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, apperror.NewReasonError(422, apperror.ReasonOfferInvalid, result.Message)
		}
		offerResult = &result
		offerID = &result.Offer.ID
	}

	// (5) Authoritative price, computed from server-side data only
	breakdown := CalculatePrice(valid, address.Zone.Charge, offerResult)

	// (6)+(7) Persist order and snapshots atomically
	order := &entity.Order{
		OrderNo:             utils.GenerateOrderNo(),
		UserID:              input.UserID,
		AddressID:           address.ID,
		OfferID:             offerID,
		Status:              enum.OrderStatusPendingPayment,
		Subtotal:            breakdown.Subtotal,
		TaxAmount:           breakdown.TaxAmount,
		DeliveryCharge:      breakdown.DeliveryCharge,
		DiscountAmount:      breakdown.DiscountAmount,
		TotalPrice:          breakdown.GrandTotal,
		SpecialInstructions: input.SpecialInstructions,
	}

	items := make([]entity.OrderItem, len(valid))
	for i := range valid {
		line := &valid[i]
		item := entity.OrderItem{
			ItemID:       line.Line.ItemID,
			SizeID:       line.Line.SizeID,
			CategoryName: line.CategoryName,
			ItemName:     line.ItemName,
			SizeName:     line.SizeName,
			BasePrice:    line.SizePrice,
			TaxRate:      line.TaxRate,
			Quantity:     line.Line.Quantity,
			LineSubtotal: line.Subtotal(),
			LineTax:      breakdown.LineTaxes[i],
		}
		for _, addOn := range line.AddOns {
			item.AddOns = append(item.AddOns, entity.OrderItemAddOn{
				AddOnID:    addOn.ID,
				AddOnName:  addOn.Name,
				AddOnPrice: addOn.Price,
				Quantity:   line.Line.Quantity,
			})
		}
		items[i] = item
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	// (8) Emitted only after the transaction committed
	s.notifier.OrderCreated(order)

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order with its line items. When userID is non-nil
// the order must belong to that user.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if userID != nil && (order.UserID == nil || *order.UserID != *userID) {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// AdvanceStatus moves an order to the requested status on behalf of staff.
// Jumps are rejected against the transition table; concurrent writers are
// serialized by a compare-and-set on the current status.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, to enum.OrderStatus) (*entity.Order, error) {
	if !to.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown order status")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	return s.transition(ctx, order, order.Status, to)
}

// CancelByUser cancels an order on the customer's request. Only legal while
// the order is still awaiting payment; after confirmation cancellation is a
// staff decision.
func (s *OrderService) CancelByUser(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	if order.Status != enum.OrderStatusPendingPayment {
		return nil, apperror.NewReasonError(422, apperror.ReasonInvalidTransition,
			"Order can no longer be cancelled, contact the restaurant")
	}

	return s.transition(ctx, order, enum.OrderStatusPendingPayment, enum.OrderStatusCancelled)
}

// ConfirmPayment advances a pending order to confirmed on a successful
// payment. Idempotent: a duplicate success callback for an order that is
// already confirmed or further along is a no-op.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if order.Status != enum.OrderStatusPendingPayment {
		// Duplicate callback; the order has already moved on
		return order, nil
	}

	return s.transition(ctx, order, enum.OrderStatusPendingPayment, enum.OrderStatusConfirmed)
}

// FailPayment cancels a pending order on a failed payment. Idempotent the
// same way ConfirmPayment is.
func (s *OrderService) FailPayment(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if order.Status != enum.OrderStatusPendingPayment {
		return order, nil
	}

	return s.transition(ctx, order, enum.OrderStatusPendingPayment, enum.OrderStatusCancelled)
}

// transition validates the move against the transition table, applies it
// with a compare-and-set and emits the status-change event. Notification
// delivery is best-effort and cannot fail the transition.
func (s *OrderService) transition(ctx context.Context, order *entity.Order, from, to enum.OrderStatus) (*entity.Order, error) {
	if !from.CanTransitionTo(to) {
		return nil, apperror.NewReasonError(422, apperror.ReasonInvalidTransition,
			"Cannot move order from "+from.String()+" to "+to.String())
	}

	ok, err := s.orderRepo.UpdateStatusIf(ctx, order.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewReasonError(409, apperror.ReasonStaleStatus,
			"Order status changed concurrently, refetch and retry")
	}

	order.Status = to
	s.notifier.OrderStatusChanged(order, StatusChange{
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		FromStatus: from,
		ToStatus:   to,
	})

	return order, nil
}

// fetchCatalog batch-loads the distinct items referenced by the cart lines
func (s *OrderService) fetchCatalog(ctx context.Context, lines []CartLine) (map[uuid.UUID]*entity.MenuItem, error) {
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

// cartScope collects the distinct category and item ids in the cart for
// offer scope matching
func cartScope(lines []EnrichedCartLine) ([]uuid.UUID, []uuid.UUID) {
	seenCat := make(map[uuid.UUID]bool)
	seenItem := make(map[uuid.UUID]bool)
	var categoryIDs, itemIDs []uuid.UUID
	for i := range lines {
		if !seenCat[lines[i].CategoryID] {
			seenCat[lines[i].CategoryID] = true
			categoryIDs = append(categoryIDs, lines[i].CategoryID)
		}
		if !seenItem[lines[i].Line.ItemID] {
			seenItem[lines[i].Line.ItemID] = true
			itemIDs = append(itemIDs, lines[i].Line.ItemID)
		}
	}
	return categoryIDs, itemIDs
}

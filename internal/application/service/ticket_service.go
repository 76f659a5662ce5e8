package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
	"github.com/zaikabox/zaikabox-api/pkg/printer"
)

// TicketService formats kitchen tickets and sends them to the thermal
// printer. It also implements Notifier so a ticket is printed automatically
// when an order reaches confirmed.
type TicketService struct {
	printer      printer.Printer
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewTicketService creates a new ticket service.
func NewTicketService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
) *TicketService {
	return &TicketService{
		printer:      p,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *TicketService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test ticket to the printer.
// Returns the ticket data so the handler can return it as JSON when no
// printer is configured.
func (s *TicketService) TestPrint() (*entity.KitchenTicket, error) {
	ticket := &entity.KitchenTicket{
		RestaurantName: "PRINTER TEST",
		OrderNo:        "TEST-001",
		PlacedAt:       time.Now().Format("2006-01-02 15:04"),
		Address:        "Test Address, Test City",
		Items: []entity.TicketItem{
			{Name: "Test Item 1", Size: "Regular", Quantity: 1},
			{Name: "Test Item 2", Size: "Large", Quantity: 2,
				AddOns: []entity.TicketAddOn{{Name: "Test Add-on", Quantity: 1}}},
		},
		Total: 20.00,
	}

	data := FormatTicket(ticket)
	if err := s.printer.Print(data); err != nil {
		return ticket, fmt.Errorf("test print failed: %w", err)
	}

	return ticket, nil
}

// PrintOrderTicket fetches an order (with line items) and prints its
// kitchen ticket. Used by staff for reprints.
func (s *TicketService) PrintOrderTicket(ctx context.Context, orderID uuid.UUID) (*entity.KitchenTicket, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	ticket := s.buildTicket(ctx, order)

	data := FormatTicket(ticket)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (order %s): %v", order.OrderNo, err)
		return ticket, fmt.Errorf("failed to print ticket: %w", err)
	}

	return ticket, nil
}

// OrderCreated is part of the Notifier interface. Tickets are printed on
// confirmation, not creation, so unpaid orders never reach the kitchen.
func (s *TicketService) OrderCreated(order *entity.Order) {}

// OrderStatusChanged prints the kitchen ticket when an order transitions
// to confirmed. Runs asynchronously; print failures are logged, never
// propagated back into the order flow.
func (s *TicketService) OrderStatusChanged(order *entity.Order, change StatusChange) {
	if change.ToStatus != enum.OrderStatusConfirmed {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := s.PrintOrderTicket(ctx, order.ID); err != nil {
			log.Printf("Kitchen ticket for order %s not printed: %v", change.OrderNo, err)
		}
	}()
}

func (s *TicketService) buildTicket(ctx context.Context, order *entity.Order) *entity.KitchenTicket {
	ticket := &entity.KitchenTicket{
		RestaurantName: "Kitchen",
		OrderNo:        order.OrderNo,
		PlacedAt:       order.CreatedAt.Format("2006-01-02 15:04"),
		Total:          float64(order.TotalPrice) / 100,
	}

	if settings, err := s.settingsRepo.Get(ctx); err == nil {
		ticket.RestaurantName = settings.Name
	}

	ticket.Address = order.Address.Line1
	if order.Address.Line2 != nil && *order.Address.Line2 != "" {
		ticket.Address += ", " + *order.Address.Line2
	}
	ticket.Address += ", " + order.Address.City + " " + order.Address.Pincode
	if order.Address.Zone.Name != "" {
		ticket.Zone = order.Address.Zone.Name
	}
	if order.Address.Phone != nil {
		ticket.Phone = *order.Address.Phone
	}
	if order.User != nil {
		ticket.Customer = order.User.Name
	}
	if order.SpecialInstructions != nil {
		ticket.Instructions = *order.SpecialInstructions
	}

	for _, item := range order.Items {
		ti := entity.TicketItem{
			Name:     item.ItemName,
			Size:     item.SizeName,
			Quantity: item.Quantity,
		}
		for _, a := range item.AddOns {
			ti.AddOns = append(ti.AddOns, entity.TicketAddOn{
				Name:     a.AddOnName,
				Quantity: a.Quantity,
			})
		}
		ticket.Items = append(ticket.Items, ti)
	}

	return ticket
}

// FormatTicket converts a KitchenTicket into ESC/POS bytes.
func FormatTicket(t *entity.KitchenTicket) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(t.RestaurantName).
		SetFontSize(printer.FontNormal).
		Text("KITCHEN TICKET").
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.SetBold(true).
		SetFontSize(printer.FontWide).
		Text(t.OrderNo).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		KeyValue("Placed:", t.PlacedAt)

	if t.Customer != "" {
		doc.KeyValue("Customer:", t.Customer)
	}
	if t.Phone != "" {
		doc.KeyValue("Phone:", t.Phone)
	}

	doc.Separator('-')

	// Items in double height so they read across the pass
	for _, item := range t.Items {
		doc.SetFontSize(printer.FontTall).
			TextF("%dx %s (%s)", item.Quantity, item.Name, item.Size).
			SetFontSize(printer.FontNormal)
		for _, a := range item.AddOns {
			if a.Quantity > 1 {
				doc.TextF("  + %dx %s", a.Quantity, a.Name)
			} else {
				doc.TextF("  + %s", a.Name)
			}
		}
	}

	if t.Instructions != "" {
		doc.Separator('-').
			SetBold(true).
			Text("NOTE:").
			SetBold(false).
			Wrapped(t.Instructions)
	}

	doc.Separator('-')

	// Delivery details
	doc.Wrapped(t.Address)
	if t.Zone != "" {
		doc.KeyValue("Zone:", t.Zone)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", t.Total)).
		SetBold(false)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

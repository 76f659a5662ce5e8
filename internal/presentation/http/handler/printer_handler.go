package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles kitchen printer HTTP requests.
type PrinterHandler struct {
	ticketService *service.TicketService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(ticketService *service.TicketService) *PrinterHandler {
	return &PrinterHandler{ticketService: ticketService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.ticketService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test ticket to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	ticket, err := h.ticketService.TestPrint()
	if err != nil {
		// Return the ticket data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"ticket":  ticket,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test ticket sent to printer", gin.H{
		"ticket": ticket,
	})
}

// PrintTicket reprints the kitchen ticket for an order.
func (h *PrinterHandler) PrintTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID format")
		return
	}

	ticket, err := h.ticketService.PrintOrderTicket(c.Request.Context(), id)
	if err != nil {
		// If the ticket was built but printing failed, return it with a warning
		if ticket != nil {
			response.OK(c, "Ticket generated but printing failed", gin.H{
				"ticket":  ticket,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen ticket printed successfully", gin.H{
		"ticket": ticket,
	})
}

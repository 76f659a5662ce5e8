package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/config"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/handler"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/middleware"
	"github.com/zaikabox/zaikabox-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Menu         *handler.MenuHandler
	Cart         *handler.CartHandler
	Offer        *handler.OfferHandler
	Order        *handler.OrderHandler
	Address      *handler.AddressHandler
	Notification *handler.NotificationHandler
	Settings     *handler.SettingsHandler
	Printer      *handler.PrinterHandler
	Webhook      *handler.WebhookHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Gateway callbacks authenticate by signature, not by token, and
		// must never be rate limited away
		v1.POST("/webhooks/payment", h.Webhook.PaymentWebhook)

		// Guest-accessible routes: authentication is optional so browsing,
		// cart validation and guest checkout all work anonymously
		public := v1.Group("")
		public.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
		public.Use(rateLimiter.Middleware())
		registerPublicRoutes(public, h, deps)

		// Authenticated customer routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		registerProtectedRoutes(protected, h)

		// Staff routes
		staff := v1.Group("/staff")
		staff.Use(middleware.AuthMiddleware(deps.JWTManager))
		staff.Use(middleware.RequireRole("staff", "admin"))
		staff.Use(rateLimiter.Middleware())
		registerStaffRoutes(staff, h)
	}

	return router
}

func registerPublicRoutes(public *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Menu browsing
	public.GET("/menu", h.Menu.GetMenu)
	public.GET("/menu/items/:id", h.Menu.GetItem)

	// Restaurant open/closed status
	public.GET("/restaurant/status", h.Settings.Status)

	// Delivery zones and guest addresses
	public.GET("/zones", h.Address.ListZones)
	public.POST("/addresses", h.Address.Create)

	// Cart validation and offers
	public.POST("/cart/validate", h.Cart.Validate)
	public.GET("/offers", h.Offer.List)
	public.POST("/offers/preview", h.Offer.Preview)

	// Checkout; retries with the same Idempotency-Key replay the stored
	// response instead of creating a second order
	public.POST("/orders", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Order.Create)

	// Order tracking and payment, ownership enforced per request
	public.GET("/orders/:id", h.Order.Get)
	public.POST("/orders/:id/pay", h.Order.Pay)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Order history
	protected.GET("/orders", h.Order.List)
	protected.POST("/orders/:id/cancel", h.Order.Cancel)

	// Saved addresses
	protected.GET("/addresses", h.Address.List)

	// Notification feed
	protected.GET("/notifications", h.Notification.List)
	protected.POST("/notifications/:id/read", h.Notification.MarkRead)
}

func registerStaffRoutes(staff *gin.RouterGroup, h *Handlers) {
	// Order management
	staff.PUT("/orders/:id/status", h.Order.UpdateStatus)
	staff.POST("/orders/:id/ticket", h.Printer.PrintTicket)

	// Kitchen printer
	staff.GET("/printer/status", h.Printer.GetStatus)
	staff.POST("/printer/test", h.Printer.TestPrint)

	// Restaurant settings
	staff.GET("/settings", h.Settings.Get)
	staff.PUT("/settings", h.Settings.Update)
}

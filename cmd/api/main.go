package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/config"
	"github.com/zaikabox/zaikabox-api/internal/infrastructure/database"
	"github.com/zaikabox/zaikabox-api/internal/infrastructure/gateway"
	"github.com/zaikabox/zaikabox-api/internal/infrastructure/repository"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/handler"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/routes"
	"github.com/zaikabox/zaikabox-api/pkg/printer"
	"github.com/zaikabox/zaikabox-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	zoneRepo := repository.NewDeliveryZoneRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize payment gateway
	paymentGateway := gateway.NewFromConfig(&cfg.Payment)

	// Initialize kitchen printer
	kitchenPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: printer disabled: %v", err)
		kitchenPrinter = printer.NewNullPrinter()
	}
	defer kitchenPrinter.Close()

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo)
	menuService := service.NewMenuService(catalogRepo)
	cartService := service.NewCartService(catalogRepo, zoneRepo)
	offerService := service.NewOfferService(offerRepo, orderRepo)
	addressService := service.NewAddressService(addressRepo, zoneRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	ticketService := service.NewTicketService(kitchenPrinter, orderRepo, settingsRepo, cfg.Printer.Type)
	notifier := service.ComposeNotifiers(notificationService, ticketService)
	orderService := service.NewOrderService(orderRepo, catalogRepo, addressRepo, settingsRepo, offerService, notifier)
	paymentService := service.NewPaymentService(paymentRepo, orderService, paymentGateway, cfg.Payment.WebhookSecret)

	// Initialize handlers
	handlers := &routes.Handlers{
		Menu:         handler.NewMenuHandler(menuService),
		Cart:         handler.NewCartHandler(cartService),
		Offer:        handler.NewOfferHandler(offerService, cartService),
		Order:        handler.NewOrderHandler(orderService, paymentService),
		Address:      handler.NewAddressHandler(addressService),
		Notification: handler.NewNotificationHandler(notificationService),
		Settings:     handler.NewSettingsHandler(settingsService),
		Printer:      handler.NewPrinterHandler(ticketService),
		Webhook:      handler.NewWebhookHandler(paymentService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

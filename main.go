package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vetdesk-backend/config"
	"vetdesk-backend/controllers"
	"vetdesk-backend/models"
	"vetdesk-backend/repository"
	"vetdesk-backend/routes"
	"vetdesk-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Pet{},
		&models.Veterinarian{},
		&models.Appointment{},
		&models.Service{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Payment{},
		&models.NotificationLog{},
	)

	appointmentRepo := repository.NewAppointmentRepository(db)
	petRepo := repository.NewPetRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	clientRepo := repository.NewClientRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifier := services.NewTwilioNotifier(notificationRepo, clientRepo, services.TwilioConfig{
		AccountSID:     cfg.Twilio.AccountSID,
		AuthToken:      cfg.Twilio.AuthToken,
		FromNumber:     cfg.Twilio.FromNumber,
		WhatsAppNumber: cfg.Twilio.WhatsAppNumber,
	})

	appointmentService := services.NewAppointmentService(appointmentRepo, petRepo, notifier, cfg.NoShowGrace)
	billingService := services.NewBillingService(invoiceRepo, clientRepo)
	inventoryService := services.NewInventoryService(productRepo)
	rosterService := services.NewRosterService(clientRepo)

	scheduler, err := appointmentService.StartSweepScheduler(cfg.SweepSchedule)
	if err != nil {
		log.Fatalf("Failed to start sweep scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, routes.Controllers{
		Auth:         controllers.NewAuthController(db),
		Appointments: controllers.NewAppointmentController(appointmentService, cfg.SweepToken),
		Invoices:     controllers.NewInvoiceController(billingService),
		Inventory:    controllers.NewInventoryController(inventoryService),
		Clients:      controllers.NewClientController(rosterService),
	})
	printRoutes(r)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

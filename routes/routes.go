package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vetdesk-backend/config"
	"vetdesk-backend/controllers"
	"vetdesk-backend/middleware"
	"vetdesk-backend/models"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Appointments *controllers.AppointmentController
	Invoices     *controllers.InvoiceController
	Inventory    *controllers.InventoryController
	Clients      *controllers.ClientController
}

func SetupRouter(cfg *config.Config, ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Sweep-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)

		auth.Use(middleware.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	// Scheduled-trigger entry point, guarded by the shared sweep token
	// instead of a user session.
	r.POST("/jobs/noshow-sweep", ctrl.Appointments.SweepScheduled)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.POST("", ctrl.Appointments.Create)
			appointments.GET("", ctrl.Appointments.List)
			appointments.GET("/:id", ctrl.Appointments.Get)
			appointments.PATCH("/:id/status", ctrl.Appointments.Transition)
			appointments.POST("/:id/triage",
				middleware.RequireRole(models.RoleVeterinarian, models.RoleAdmin),
				ctrl.Appointments.RecordTriage)
			appointments.POST("/sweep",
				middleware.RequireRole(models.RoleAdmin),
				ctrl.Appointments.Sweep)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", ctrl.Invoices.Create)
			invoices.GET("", ctrl.Invoices.List)
			invoices.GET("/:id", ctrl.Invoices.Get)
			invoices.POST("/:id/payments", ctrl.Invoices.ApplyPayment)
		}

		inventory := api.Group("/inventory")
		{
			inventory.POST("/adjustments",
				middleware.RequireRole(models.RoleAdmin),
				ctrl.Inventory.Adjust)
		}
		api.GET("/products", ctrl.Inventory.ListProducts)

		clients := api.Group("/clients")
		{
			clients.GET("", ctrl.Clients.Roster)
			clients.GET("/:id/receipts", ctrl.Invoices.ClientReceipts)
		}
	}

	return r
}

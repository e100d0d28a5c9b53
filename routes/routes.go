package routes

import (
	"net/http"
	"time"

	"groomify/handlers"
	"groomify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTenantRoutes registers tenant onboarding. Registration is public;
// it is where the bearer token comes from.
func RegisterTenantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/tenants/register", hb.Tenant.Register)
}

// RegisterCatalogRoutes registers the tenant catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.TenantAuthMiddleware(hb.TenantRepo))
		api.POST("/customers", hb.Catalog.CreateCustomer)
		api.GET("/customers/:id", hb.Catalog.GetCustomer)
		api.POST("/pets", hb.Catalog.CreatePet)
		api.GET("/pets/:id", hb.Catalog.GetPet)
		api.POST("/services", hb.Catalog.CreateService)
		api.GET("/services/:id", hb.Catalog.GetService)
	}
}

// RegisterAppointmentRoutes sets up the endpoints for the booking engine.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	appointments := r.Group("/api/appointments")
	{
		appointments.Use(middleware.TenantAuthMiddleware(hb.TenantRepo))
		appointments.POST("/pre-book", hb.Booking.PreBook)
		appointments.GET("/:id", hb.Booking.Get)
		appointments.POST("/:id/cancel", hb.Booking.Cancel)
		appointments.POST("/:id/complete", hb.Booking.Complete)
		appointments.POST("/:id/no-show", hb.Booking.NoShow)
	}
}

// RegisterPaymentRoutes registers checkout creation and the provider
// webhook. The webhook stays outside tenant auth: the provider calls it
// with nothing but the external payment id.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	payments := r.Group("/api/payments")
	{
		payments.Use(middleware.TenantAuthMiddleware(hb.TenantRepo))
		payments.POST("/checkout", hb.Payment.CreateCheckout)
	}

	r.POST("/api/webhooks/payment-provider", hb.Payment.Webhook)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Groomify"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterTenantRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}

package routes

import (
	"time"

	"bookly/handlers"
	"bookly/middleware"
	"bookly/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers availability and catalog reads under a provider.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers/:providerID")
	{
		api.GET("/services", hb.Catalog.ListProviderServicesHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/availability", hb.Availability.GetAvailabilityHandler)
		protected.PUT("/availability",
			middleware.RequireRoles(models.RoleProvider, models.RoleAdmin),
			hb.Availability.SetAvailabilityHandler)
	}
}

// RegisterServiceRoutes registers the catalog and the public slot query.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/:serviceID", hb.Catalog.GetServiceHandler)
		api.GET("/:serviceID/slots", hb.Slots.GetOpenSlotsHandler)

		api.POST("",
			middleware.JWTAuthMiddleware(),
			middleware.RequireRoles(models.RoleProvider, models.RoleAdmin),
			hb.Catalog.CreateServiceHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", hb.Bookings.CreateBookingHandler)
		bookingGroup.GET("", hb.Bookings.ListBookingsHandler)
		bookingGroup.GET("/:bookingID", hb.Bookings.GetBookingHandler)
		bookingGroup.PATCH("/:bookingID/status", hb.Bookings.UpdateBookingStatusHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for operator actions.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware())
		adminGroup.POST("/tokens", hb.Admin.IssueTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterProviderRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

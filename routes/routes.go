package routes

import (
	"net/http"

	"stagelink/handlers"
	"stagelink/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerSet bundles the constructed handlers for route registration.
type HandlerSet struct {
	Booking       *handlers.BookingHandler
	Performer     *handlers.PerformerHandler
	Admin         *handlers.AdminHandler
	DoNotServe    *handlers.DoNotServeHandler
	Communication *handlers.CommunicationHandler
	Catalog       *handlers.CatalogHandler
}

// RegisterBookingRoutes registers the client-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/booking")
	{
		api.POST("", hs.Booking.CreateBookingHandler)
		api.GET("/:id", hs.Booking.GetBookingHandler)
		api.POST("/:id/deposit", hs.Booking.ConfirmDepositHandler)
	}
	r.GET("/api/services", hs.Catalog.ListServicesHandler)
	r.GET("/api/communications", hs.Communication.ListHandler)
	r.PATCH("/api/communications/:id/read", hs.Communication.MarkReadHandler)
}

// RegisterPerformerRoutes registers the performer endpoints.
func RegisterPerformerRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/performer")
	api.Use(middleware.JWTAuthPerformerMiddleware())
	{
		api.GET("/bookings", hs.Performer.ListAssignedBookingsHandler)
		api.POST("/bookings/:id/decision", hs.Performer.DecideHandler)
		api.PATCH("/status", hs.Performer.UpdateStatusHandler)
		api.POST("/do-not-serve", hs.DoNotServe.SubmitHandler)
	}
	r.GET("/api/performers", hs.Performer.ListPerformersHandler)
}

// RegisterAdminRoutes registers the admin workflow endpoints.
func RegisterAdminRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthAdminMiddleware())
	{
		api.GET("/bookings", hs.Booking.ListBookingsHandler)
		api.POST("/bookings/:id/vetting", hs.Admin.VettingHandler)
		api.POST("/bookings/:id/confirm-deposit", hs.Admin.ConfirmDepositHandler)
		api.POST("/bookings/:id/reject", hs.Admin.RejectHandler)
		api.POST("/bookings/:id/reassign", hs.Admin.ReassignHandler)
		api.POST("/bookings/:id/override", hs.Admin.OverrideHandler)

		api.GET("/do-not-serve", hs.DoNotServe.ListHandler)
		api.POST("/do-not-serve", hs.DoNotServe.SubmitHandler)
		api.PATCH("/do-not-serve/:id", hs.DoNotServe.ReviewHandler)

		api.PATCH("/performers/:id", hs.Admin.UpdatePerformerProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Stagelink"})
	})
}

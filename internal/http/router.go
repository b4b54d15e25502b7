package http

import (
	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain"
	"safariconnector/internal/http/handlers"
	"safariconnector/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(env intconfig.Env) *gin.Engine {
	handlers.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	api := r.Group("/api")

	api.GET("/health", handlers.Health)
	api.GET("/db-check", handlers.DBCheck)

	// public surface: browse published trips, register, log in
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", handlers.Login)
	api.GET("/trips", handlers.ListPublicTrips)
	api.GET("/trips/:id", handlers.GetTrip)
	api.GET("/trips/:id/itinerary.pdf", handlers.GetTripItineraryPDF)

	auth := api.Group("")
	auth.Use(middleware.RequireAuth(handlers.JWTSecret()))

	traveller := auth.Group("")
	traveller.Use(middleware.RequireRoles(domain.RoleTraveller))
	traveller.POST("/enquiries", handlers.CreateEnquiry)
	traveller.POST("/quotes/:id/accept", handlers.AcceptQuote)
	traveller.POST("/bookings/:id/submit-payment", handlers.SubmitPayment)
	traveller.POST("/planner/itinerary", handlers.PlanItinerary)

	auth.GET("/enquiries", handlers.ListEnquiries)
	auth.GET("/enquiries/:id", handlers.GetEnquiry)
	auth.GET("/enquiries/:id/messages", handlers.ListEnquiryMessages)
	auth.POST("/enquiries/:id/messages", handlers.PostEnquiryMessage)

	auth.GET("/bookings", handlers.ListBookings)
	auth.GET("/bookings/:id", handlers.GetBooking)
	auth.GET("/bookings/:id/invoice.pdf", handlers.GetBookingInvoicePDF)
	auth.POST("/bookings/:id/cancel", handlers.CancelBooking)

	operator := auth.Group("")
	operator.Use(middleware.RequireRoles(domain.RoleOperator))
	operator.GET("/operator/trips", handlers.ListOperatorTrips)
	operator.POST("/operator/trips", handlers.CreateTrip)
	operator.PUT("/operator/trips/:id", handlers.UpdateTrip)
	operator.DELETE("/operator/trips/:id", handlers.DeleteTrip)
	operator.POST("/enquiries/:id/quotes", handlers.IssueQuote)

	opsConfirm := auth.Group("")
	opsConfirm.Use(middleware.RequireRoles(domain.RoleOperator, domain.RoleAdmin))
	opsConfirm.POST("/bookings/:id/confirm", handlers.ConfirmBooking)
	opsConfirm.POST("/bookings/:id/complete", handlers.CompleteBooking)

	finance := auth.Group("")
	finance.Use(middleware.RequireRoles(domain.RoleFinance, domain.RoleAdmin))
	finance.POST("/bookings/:id/verify-payment", handlers.VerifyPayment)
	finance.GET("/payments", handlers.ListPayments)

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/operators", handlers.ListOperators)
	admin.PUT("/operators/:id/status", handlers.UpdateOperatorStatus)
	admin.GET("/bookings", handlers.ListBookings)
	admin.POST("/bookings/:id/payment-status", handlers.OverridePaymentStatus)

	return r
}

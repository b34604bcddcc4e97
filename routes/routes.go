package routes

import (
	"net/http"

	"courtside/auth"
	"courtside/booking"
	"courtside/facilities"
	"courtside/middleware"
	"courtside/ratelim"
	"courtside/stats"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))

	router.GET("/api/auth/profile", middleware.Authenticate(auth.GetProfile))
	router.PUT("/api/auth/profile", middleware.Authenticate(auth.UpdateProfile))
	router.PUT("/api/auth/password", middleware.Authenticate(auth.ChangePassword))
	router.POST("/api/auth/profile/image", middleware.Authenticate(auth.UploadProfileImage))
}

func AddFacilityRoutes(router *httprouter.Router) {
	router.GET("/api/facilities", facilities.GetFacilities)
	router.GET("/api/facilities/:id", facilities.GetFacility)
	router.POST("/api/facilities", middleware.RequireAdmin(facilities.CreateFacility))
	router.PUT("/api/facilities/:id", middleware.RequireAdmin(facilities.UpdateFacility))
	router.DELETE("/api/facilities/:id", middleware.RequireAdmin(facilities.DeleteFacility))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// availability lives outside /api/bookings so the :id route can't
	// swallow it
	router.GET("/api/availability", booking.GetAvailability)

	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(booking.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(booking.ListBookings))
	router.GET("/api/bookings/:id", middleware.Authenticate(booking.GetBooking))
	router.PUT("/api/bookings/:id", middleware.Authenticate(booking.UpdateBookingStatus))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(booking.DeleteBooking))
	router.GET("/api/bookings/:id/receipt", middleware.Authenticate(booking.BookingReceipt))

	router.GET("/ws/bookings/:facilityid/:date", booking.HandleWS)
}

func AddStatsRoutes(router *httprouter.Router) {
	router.GET("/api/stats", middleware.RequireAdmin(stats.GetStats))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

package api

import (
	"log"
	stdhttp "net/http"

	"hotelbackend/internal/auth"
	intconfig "hotelbackend/internal/config"
	h "hotelbackend/internal/http/handlers"
	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/storage"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	blobs := storage.BlobStore(&storage.CloudinaryStore{
		CloudName: env.CloudinaryCloudName,
		APIKey:    env.CloudinaryAPIKey,
		APISecret: env.CloudinaryAPISecret,
		Folder:    env.CloudinaryFolder,
	})
	if env.CloudinaryCloudName == "" {
		log.Println("warning: cloudinary not configured, uploads kept in memory")
		blobs = storage.NewMemoryStore()
	}

	sessions := auth.SessionStore{Client: intconfig.Redis, TTL: auth.DefaultSessionTTL}
	h.Configure(env, blobs, sessions)

	guard := middleware.Guard{Secret: []byte(env.JWTSecret), Sessions: sessions}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/agency/login", h.AgencyLogin)
		authGroup.POST("/hotelier/login", h.HotelierLogin)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/session", h.Session)

		// Agency: tenant management
		hotels := api.Group("/hotels", guard.RequireAgency())
		hotels.GET("", h.GetHotels)
		hotels.POST("", h.CreateHotel)
		hotels.GET("/:hotelId", h.GetHotelByID)
		hotels.PUT("/:hotelId", h.UpdateHotel)
		hotels.DELETE("/:hotelId", h.DeleteHotel)
		hotels.POST("/:hotelId/hotelier-password", h.ResetHotelierPassword)

		// Hotelier: booking management, scoped to the hotel in the path
		bookings := api.Group("/hotels/:hotelId/bookings", guard.RequireHotelier())
		bookings.GET("", h.GetBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:bookingId", h.GetBookingByID)
		bookings.PUT("/:bookingId", h.UpdateBooking)
		bookings.DELETE("/:bookingId", h.DeleteBooking)
		bookings.PUT("/:bookingId/cancel", h.CancelBooking)
		bookings.PUT("/:bookingId/complete", h.CompleteBooking)
		bookings.GET("/:bookingId/guest-link", h.GetGuestLink)
		bookings.GET("/:bookingId/confirmation-pdf", h.GetBookingConfirmationPDF)
		bookings.POST("/:bookingId/confirmation-draft", h.DraftConfirmationEmail)

		// Guest wizard (public, link-addressed)
		guest := api.Group("/guest/:hotelId/:bookingId")
		guest.GET("", h.GetGuestWizard)
		guest.POST("/complete", h.CompleteGuestWizard)
		guest.POST("/documents", h.UploadGuestDocument)
	}

	return r
}

package handlers

import (
	"net/http"

	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Blobs:     getBlobs(),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/hotels/:hotelId/bookings
func GetBookings(c *gin.Context) {
	list, err := bookingService(c).List(c.Param("hotelId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// GET /api/hotels/:hotelId/bookings/:bookingId
func GetBookingByID(c *gin.Context) {
	b, err := bookingService(c).Get(c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// POST /api/hotels/:hotelId/bookings
func CreateBooking(c *gin.Context) {
	var req services.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", fieldErrors(err))
		return
	}

	b, err := bookingService(c).Create(c.Param("hotelId"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// PUT /api/hotels/:hotelId/bookings/:bookingId
func UpdateBooking(c *gin.Context) {
	var req services.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", fieldErrors(err))
		return
	}

	b, err := bookingService(c).Update(c.Param("hotelId"), c.Param("bookingId"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// PUT /api/hotels/:hotelId/bookings/:bookingId/cancel
func CancelBooking(c *gin.Context) {
	b, err := bookingService(c).Cancel(c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// PUT /api/hotels/:hotelId/bookings/:bookingId/complete
func CompleteBooking(c *gin.Context) {
	b, err := bookingService(c).Complete(c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// DELETE /api/hotels/:hotelId/bookings/:bookingId
func DeleteBooking(c *gin.Context) {
	if err := bookingService(c).Delete(c.Request.Context(), c.Param("hotelId"), c.Param("bookingId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// GET /api/hotels/:hotelId/bookings/:bookingId/guest-link
func GetGuestLink(c *gin.Context) {
	link, err := bookingService(c).GuestLink(getEnv().PublicBaseURL, c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

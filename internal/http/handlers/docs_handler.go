package handlers

import (
	"net/http"

	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/hotels/:hotelId/bookings/:bookingId/confirmation-pdf
func GetBookingConfirmationPDF(c *gin.Context) {
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}

	pdf, filename, err := svc.GenerateConfirmation(c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

package handlers

import (
	"net/http"

	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/hotels/:hotelId/bookings/:bookingId/confirmation-draft
// Asks the generative-text collaborator for a confirmation email draft.
// Nothing is sent to the guest; the hotelier reviews and copies the text.
func DraftConfirmationEmail(c *gin.Context) {
	e := getEnv()
	svc := services.NotifyService{
		RequestID: middleware.GetRequestID(c),
		Endpoint:  e.TextGenURL,
		APIKey:    e.TextGenAPIKey,
	}

	draft, err := svc.DraftConfirmationEmail(c.Request.Context(), c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": draft})
}

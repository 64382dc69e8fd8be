package handlers

import (
	"io"
	"net/http"

	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

// maxDocumentSize bounds guest uploads (ID photos, payment proofs).
const maxDocumentSize = 10 << 20

func guestService(c *gin.Context) services.GuestService {
	return services.GuestService{
		Blobs:     getBlobs(),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/guest/:hotelId/:bookingId
// Public: resolves a guest link into the wizard view, or the completed marker
// when the booking is no longer open.
func GetGuestWizard(c *gin.Context) {
	view, err := guestService(c).View(c.Param("hotelId"), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/guest/:hotelId/:bookingId/complete
// Public: the final wizard submission. Missing required fields reject the
// request before anything is persisted.
func CompleteGuestWizard(c *gin.Context) {
	var req services.CompletionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", fieldErrors(err))
		return
	}

	b, err := guestService(c).Complete(c.Param("hotelId"), c.Param("bookingId"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// POST /api/guest/:hotelId/:bookingId/documents?kind=id-front
// Public: stores one uploaded document for the booking.
func UploadGuestDocument(c *gin.Context) {
	kind := c.Query("kind")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to read upload", err)
		return
	}
	if len(data) > maxDocumentSize {
		respondError(c, http.StatusBadRequest, "validation_error", "file exceeds 10 MB", nil)
		return
	}

	url, err := guestService(c).UploadDocument(
		c.Request.Context(),
		c.Param("hotelId"),
		c.Param("bookingId"),
		kind,
		data,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

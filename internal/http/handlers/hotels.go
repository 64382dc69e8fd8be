package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

// logoPayload carries a base64 logo image inline with the hotel payload.
// A data-URI prefix ("data:image/png;base64,...") is accepted and stripped.
type logoPayload struct {
	Data        string `json:"data" binding:"required"`
	ContentType string `json:"contentType"`
}

func (p *logoPayload) decode() (*services.LogoUpload, error) {
	raw := p.Data
	if i := strings.Index(raw, ","); i != -1 && strings.HasPrefix(raw, "data:") {
		if p.ContentType == "" {
			meta := raw[len("data:"):i]
			p.ContentType = strings.TrimSuffix(meta, ";base64")
		}
		raw = raw[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return &services.LogoUpload{Data: data, ContentType: p.ContentType}, nil
}

type hotelPayload struct {
	services.HotelInput
	Logo *logoPayload `json:"logo"`
}

func hotelService(c *gin.Context) services.HotelService {
	return services.HotelService{
		Blobs:     getBlobs(),
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/hotels
func GetHotels(c *gin.Context) {
	list, err := hotelService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": list})
}

// GET /api/hotels/:hotelId
func GetHotelByID(c *gin.Context) {
	h, err := hotelService(c).Get(c.Param("hotelId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": h})
}

// POST /api/hotels
func CreateHotel(c *gin.Context) {
	var req hotelPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", fieldErrors(err))
		return
	}

	logo, err := decodeLogo(req.Logo)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "logo is not valid base64", nil)
		return
	}

	h, err := hotelService(c).Create(c.Request.Context(), req.HotelInput, logo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hotel": h})
}

// PUT /api/hotels/:hotelId
func UpdateHotel(c *gin.Context) {
	var req hotelPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", fieldErrors(err))
		return
	}

	logo, err := decodeLogo(req.Logo)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "logo is not valid base64", nil)
		return
	}

	h, err := hotelService(c).Update(c.Request.Context(), c.Param("hotelId"), req.HotelInput, logo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": h})
}

// DELETE /api/hotels/:hotelId
func DeleteHotel(c *gin.Context) {
	if err := hotelService(c).Delete(c.Request.Context(), c.Param("hotelId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hotel deleted"})
}

// POST /api/hotels/:hotelId/hotelier-password
// Issues a fresh tenant password, shown once in the credentials dialog.
func ResetHotelierPassword(c *gin.Context) {
	password, err := hotelService(c).ResetHotelierPassword(c.Param("hotelId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"password": password})
}

func decodeLogo(p *logoPayload) (*services.LogoUpload, error) {
	if p == nil {
		return nil, nil
	}
	return p.decode()
}

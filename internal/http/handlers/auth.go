package handlers

import (
	"net/http"
	"time"

	"hotelbackend/internal/auth"
	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/agency/login
func AgencyLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	id, err := svc.AgencyLogin(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	startSession(c, id)
}

// POST /api/auth/hotelier/login?hotelId=...
func HotelierLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	hotelID := c.Query("hotelId")

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	id, err := svc.HotelierLogin(hotelID, req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	startSession(c, id)
}

// startSession signs the identity, stores it server side and mirrors it in
// the HTTP-only session cookie. The token is also returned for API clients.
func startSession(c *gin.Context, id auth.Identity) {
	e := getEnv()

	token, err := auth.IssueToken([]byte(e.JWTSecret), id, tokenTTL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	sid, err := getSessions().Create(c.Request.Context(), token)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	c.SetCookie(auth.CookieName, sid, int(auth.DefaultSessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"identity": id,
	})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	if sid, err := c.Cookie(auth.CookieName); err == nil && sid != "" {
		_ = getSessions().Destroy(c.Request.Context(), sid)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/session
// Returns the identity behind the current session cookie or bearer token.
func Session(c *gin.Context) {
	guard := middleware.Guard{Secret: []byte(getEnv().JWTSecret), Sessions: getSessions()}
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		var err error
		id, _, err = guard.Identity(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"identity": id})
}

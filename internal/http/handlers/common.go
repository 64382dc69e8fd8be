package handlers

import (
	"net/http"
	"sync"

	"hotelbackend/internal/auth"
	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/http/middleware"
	"hotelbackend/internal/storage"

	"github.com/gin-gonic/gin"
)

// deps holds the request-independent wiring the package-level handlers use.
var (
	depsMu   sync.RWMutex
	env      intconfig.Env
	blobs    storage.BlobStore
	sessions auth.SessionStore
)

// Configure wires environment, blob store and session store into the handler
// package. Called once by the router before any route is mounted.
func Configure(e intconfig.Env, b storage.BlobStore, s auth.SessionStore) {
	depsMu.Lock()
	defer depsMu.Unlock()
	env = e
	blobs = b
	sessions = s
}

func getEnv() intconfig.Env {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return env
}

func getBlobs() storage.BlobStore {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return blobs
}

func getSessions() auth.SessionStore {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return sessions
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

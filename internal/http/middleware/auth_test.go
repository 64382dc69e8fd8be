package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbackend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
)

func TestEvaluate(t *testing.T) {
	agency := auth.Identity{Role: auth.RoleAgency}
	hotelier := auth.Identity{Role: auth.RoleHotelier, HotelID: "h1"}

	if d := Evaluate(agency, auth.RoleAgency, ""); !d.Allowed {
		t.Fatalf("agency identity denied on agency route")
	}
	if d := Evaluate(hotelier, auth.RoleHotelier, "h1"); !d.Allowed {
		t.Fatalf("hotelier denied on its own hotel route")
	}

	d := Evaluate(hotelier, auth.RoleHotelier, "h2")
	if d.Allowed {
		t.Fatalf("hotelier allowed on another hotel's route")
	}
	if d.Redirect != "/hotelier-login?hotelId=h2" {
		t.Fatalf("wrong redirect: %q", d.Redirect)
	}

	d = Evaluate(hotelier, auth.RoleAgency, "")
	if d.Allowed || d.Redirect != "/agency/login" {
		t.Fatalf("hotelier on agency route: allowed=%v redirect=%q", d.Allowed, d.Redirect)
	}
}

func guardRouter(t *testing.T, secret []byte) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	guard := Guard{Secret: secret}
	r := gin.New()
	r.GET("/api/hotels/:hotelId/bookings", guard.RequireHotelier(), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity missing from guarded context")
		}
		c.JSON(http.StatusOK, gin.H{"hotelId": id.HotelID})
	})
	r.GET("/api/hotels", guard.RequireAgency(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestGuardAdmitsBoundHotelier(t *testing.T) {
	secret := []byte("test-secret")
	r := guardRouter(t, secret)

	token, err := auth.IssueToken(secret, auth.Identity{Role: auth.RoleHotelier, HotelID: "h1"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/hotels/h1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGuardDeniesMismatchedHotelier(t *testing.T) {
	secret := []byte("test-secret")
	r := guardRouter(t, secret)

	token, err := auth.IssueToken(secret, auth.Identity{Role: auth.RoleHotelier, HotelID: "h1"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/hotels/h2/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Redirect != "/hotelier-login?hotelId=h2" {
		t.Fatalf("wrong redirect: %q", body.Redirect)
	}
}

func TestGuardDeniesHotelierOnAgencyRoute(t *testing.T) {
	secret := []byte("test-secret")
	r := guardRouter(t, secret)

	token, err := auth.IssueToken(secret, auth.Identity{Role: auth.RoleHotelier, HotelID: "h1"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Redirect != "/agency/login" {
		t.Fatalf("wrong redirect: %q", body.Redirect)
	}
}

func TestGuardDestroysMismatchedSession(t *testing.T) {
	secret := []byte("test-secret")
	client, rmock := redismock.NewClientMock()

	gin.SetMode(gin.TestMode)
	guard := Guard{Secret: secret, Sessions: auth.SessionStore{Client: client}}
	r := gin.New()
	r.GET("/api/hotels/:hotelId/bookings", guard.RequireHotelier(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := auth.IssueToken(secret, auth.Identity{Role: auth.RoleHotelier, HotelID: "h1"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rmock.ExpectGet("session:sid-1").SetVal(token)
	rmock.ExpectDel("session:sid-1").SetVal(1)

	req := httptest.NewRequest(http.MethodGet, "/api/hotels/h2/bookings", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "sid-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
	if err := rmock.ExpectationsWereMet(); err != nil {
		t.Fatalf("session not destroyed: %v", err)
	}

	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == auth.CookieName && ck.Value == "" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not expired: %v", w.Header().Values("Set-Cookie"))
	}
}

func TestGuardDeniesMissingCredentials(t *testing.T) {
	r := guardRouter(t, []byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

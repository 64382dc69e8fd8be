package middleware

import (
	"net/http"
	"strings"

	"hotelbackend/internal/auth"
	"hotelbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Decision is the explicit outcome of the session gate for one route render:
// either the request proceeds with a validated identity, or it is denied and
// the caller belongs at the given login entry point.
type Decision struct {
	Allowed  bool
	Identity auth.Identity
	Redirect string
}

// Evaluate is the pure authorization predicate: the identity must carry the
// required role and, for hotelier routes, the matching hotel binding.
func Evaluate(id auth.Identity, required auth.Role, hotelID string) Decision {
	if id.Allows(required, hotelID) {
		return Decision{Allowed: true, Identity: id}
	}
	return Decision{Redirect: auth.LoginPath(required, hotelID)}
}

// Guard wires the session gate into gin routes.
type Guard struct {
	Secret   []byte
	Sessions auth.SessionStore
}

// RequireAgency admits only agency identities.
func (g Guard) RequireAgency() gin.HandlerFunc {
	return g.require(auth.RoleAgency)
}

// RequireHotelier admits only the hotelier bound to the route's :hotelId.
func (g Guard) RequireHotelier() gin.HandlerFunc {
	return g.require(auth.RoleHotelier)
}

func (g Guard) require(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := c.Param("hotelId")

		id, sid, err := g.Identity(c)
		decision := Decision{Redirect: auth.LoginPath(required, hotelID)}
		if err == nil {
			decision = Evaluate(id, required, hotelID)
		}

		if !decision.Allowed {
			// Forced logout: a bad or mis-scoped session is cleared before
			// the caller is sent back to the login page.
			if sid != "" {
				_ = g.Sessions.Destroy(c.Request.Context(), sid)
			}
			clearSessionCookie(c)
			utils.LogEvent(GetRequestID(c), "auth", "denied",
				"path="+c.Request.URL.Path+" redirect="+decision.Redirect)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "not authorized",
				"redirect": decision.Redirect,
			})
			return
		}

		c.Set(identityKey, decision.Identity)
		c.Next()
	}
}

// Identity resolves the caller's identity from the session cookie, falling
// back to a bearer token for API clients. The returned sid is empty for
// bearer callers.
func (g Guard) Identity(c *gin.Context) (auth.Identity, string, error) {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		token, err := g.Sessions.Get(c.Request.Context(), cookie)
		if err != nil {
			return auth.Identity{}, cookie, err
		}
		id, err := auth.ParseToken(g.Secret, token)
		return id, cookie, err
	}

	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		id, err := auth.ParseToken(g.Secret, after)
		return id, "", err
	}

	return auth.Identity{}, "", http.ErrNoCookie
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
}

// IdentityFrom returns the identity the guard stored for this request.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

package auth

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the access level carried by an identity token.
type Role string

const (
	RoleAgency   Role = "agency"
	RoleHotelier Role = "hotelier"
)

// Identity is the decoded, validated form of a token's claims. A hotelier
// identity always carries the hotel it is bound to; an agency identity never
// does. Claims are decoded into this shape exactly once, at the session
// boundary, so route code never touches raw claim maps.
type Identity struct {
	Role    Role   `json:"role"`
	HotelID string `json:"hotelId,omitempty"`
	Email   string `json:"email"`
}

// Allows is the authorization predicate for dashboard routes: the role must
// match, and hotelier access additionally requires the bound hotel to match.
func (id Identity) Allows(required Role, hotelID string) bool {
	if id.Role != required {
		return false
	}
	if required == RoleHotelier {
		return id.HotelID != "" && id.HotelID == hotelID
	}
	return true
}

// LoginPath returns the role-appropriate login entry point a denied caller
// should be redirected to.
func LoginPath(required Role, hotelID string) string {
	if required == RoleHotelier {
		if hotelID != "" {
			return "/hotelier-login?hotelId=" + url.QueryEscape(hotelID)
		}
		return "/hotelier-login"
	}
	return "/agency/login"
}

type tokenClaims struct {
	Role    string `json:"role"`
	HotelID string `json:"hotel_id,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an identity into a bearer token valid for ttl.
func IssueToken(secret []byte, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role:    string(id.Role),
		HotelID: id.HotelID,
		Email:   id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and decodes the claims into an Identity,
// rejecting tokens whose claim shape is inconsistent with their role.
func ParseToken(secret []byte, token string) (Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	id := Identity{
		Role:    Role(claims.Role),
		HotelID: claims.HotelID,
		Email:   claims.Email,
	}
	switch id.Role {
	case RoleAgency:
		if id.HotelID != "" {
			return Identity{}, fmt.Errorf("agency token must not carry a hotel id")
		}
	case RoleHotelier:
		if id.HotelID == "" {
			return Identity{}, fmt.Errorf("hotelier token missing hotel id")
		}
	default:
		return Identity{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return id, nil
}

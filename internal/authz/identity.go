package authz

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// Identity is the resolved caller of a protected request.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the tenant-wide Admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "Admin"
}

// ExtractIdentity lifts the verified JWT claims produced by the echo-jwt
// middleware into a typed Identity on the request context. Requests without a
// usable subject are rejected before any handler runs.
func ExtractIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, Identity{UserID: sub, Role: role})
			return next(c)
		}
	}
}

// IdentityFromContext returns the Identity placed by ExtractIdentity.
func IdentityFromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

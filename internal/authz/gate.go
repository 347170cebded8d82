// Package authz implements the authorization gate: per-route declarations of
// (resource, action, instance scope) checked against the policy decision
// point before any handler executes.
package authz

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projecthub/internal/errors"
	"projecthub/internal/permit"
)

// Gate builds echo middleware that consults the policy service. One oracle
// round-trip per request; decisions are never cached.
type Gate struct {
	permit permit.Authorizer
	log    *logrus.Logger
}

// NewGate creates a Gate backed by the given authorizer.
func NewGate(p permit.Authorizer, log *logrus.Logger) *Gate {
	return &Gate{permit: p, log: log}
}

// Require checks the caller against the resource type as a whole.
func (g *Gate) Require(resource, action string) echo.MiddlewareFunc {
	return g.middleware(resource, action, "")
}

// RequireInstance narrows the check to the instance named by the path
// parameter for every caller below Admin. Admins keep the type-level check.
func (g *Gate) RequireInstance(resource, action, pathParam string) echo.MiddlewareFunc {
	return g.middleware(resource, action, pathParam)
}

func (g *Gate) middleware(resource, action, pathParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "unauthorized",
					Code:  "UNAUTHORIZED",
				})
			}

			res := permit.Resource{Type: resource}
			if pathParam != "" && !id.IsAdmin() {
				res.Key = c.Param(pathParam)
			}

			allowed, err := g.permit.Check(c.Request().Context(), id.UserID, action, res)
			if err != nil {
				// fail closed: an unreachable oracle denies
				g.log.WithError(err).WithFields(logrus.Fields{
					"user":     id.UserID,
					"action":   action,
					"resource": res.String(),
				}).Error("authorization check failed")
				allowed = false
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: errors.ErrPermissionDenied.Error(),
					Code:  "PERMISSION_DENIED",
				})
			}

			return next(c)
		}
	}
}

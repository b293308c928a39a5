package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/res-landing/restaurant-system/internal/api/metrics"
	"github.com/res-landing/restaurant-system/internal/auth"
	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// Auth gates a route on a valid bearer token. The canonical header is
// "Authorization: Bearer <token>"; no other convention is accepted. On
// success the subject is resolved against the user repository (identity
// fields only, never the password hash) and attached to the request context.
func Auth(issuer *auth.Issuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if !domain.ValidRole(user.Role) {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_role").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxEmail, user.Email)
			// Role comes from the store, not the token: a stale claim on a
			// demoted account must not keep its old privileges.
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

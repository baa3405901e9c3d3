package middleware

import (
	"net/http"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/utils/apierror"
	"fostercare/cmd/internal/view"

	"github.com/labstack/echo/v4"
)

type SessionMiddlewareConfig struct {
	Auth backend.Auth

	// RedirectToLogin sends browsers to the login page instead of answering
	// 401. Used on the dashboard pages.
	RedirectToLogin bool
}

// NewSessionMiddleware resolves the session of every request once and stores
// it in the echo context under utils.SessionContextKey.
func NewSessionMiddleware(cfg *SessionMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			gate := view.NewAuthGate(cfg.Auth)
			state := gate.Check(c.Request().Context(), utils.TokenFromRequest(c))

			if state != view.Authenticated {
				if cfg.RedirectToLogin {
					return c.Redirect(http.StatusSeeOther, gate.RedirectTo())
				}
				apierr := apierror.UnauthorizedError
				return c.JSON(apierr.Code(), apierr)
			}

			c.Set(utils.SessionContextKey, gate.Session)
			return next(c)
		}
	}
}

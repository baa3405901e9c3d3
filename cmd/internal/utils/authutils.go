package utils

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionCookieName holds the access token for the HTML pages.
const SessionCookieName = "fc_session"

// TokenFromRequest reads the access token from the Authorization header,
// falling back to the session cookie used by the dashboard.
func TokenFromRequest(ctx echo.Context) string {
	if header := ctx.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		return sanitizeToken(header)
	}

	cookie, err := ctx.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return sanitizeToken(cookie.Value)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

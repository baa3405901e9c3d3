package utils

import (
	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// SessionContextKey is where the session middleware stores the resolved session.
const SessionContextKey = "session"

func GetSessionFromContext(c echo.Context) (*backend.Session, apierror.ErrorResponse) {
	val := c.Get(SessionContextKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil session from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	session, ok := val.(*backend.Session)
	if !ok {
		log.Warnf("expected session type at '%s' context key, got %T", SessionContextKey, val)
		return nil, apierror.InternalServerError
	}
	return session, nil
}

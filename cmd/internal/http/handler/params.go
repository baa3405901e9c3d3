package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// fileParam returns the :name path parameter unescaped, file names may carry
// spaces and other reserved characters.
func fileParam(c echo.Context) string {
	raw := c.Param("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func intQuery(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return fallback
	}
	return v
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

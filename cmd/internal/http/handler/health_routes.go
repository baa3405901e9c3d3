package handler

import (
	"net/http"
	"net/url"

	"fostercare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ObjectReader reads objects back from a store that has no public endpoint of
// its own, as the in-memory file store.
type ObjectReader interface {
	Get(key string) ([]byte, string, bool)
}

type DefaultMediaRoute struct {
	Store ObjectReader
}

func NewMediaRoute(store ObjectReader) *DefaultMediaRoute {
	return &DefaultMediaRoute{Store: store}
}

// Serve answers the public URLs handed out by the in-memory store.
func (m *DefaultMediaRoute) Serve(c echo.Context) error {
	key := c.Param("*")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}

	data, contentType, ok := m.Store.Get(key)
	if !ok {
		return c.JSON(http.StatusNotFound, apierror.NotFoundError)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

package handler

import (
	"context"
	"net/http"
	"strings"

	"fostercare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type RecordService[Req any, Resp any] interface {
	List(ctx context.Context) ([]*Resp, apierror.ErrorResponse)
	Get(ctx context.Context, id string) (*Resp, apierror.ErrorResponse)
	Create(ctx context.Context, req *Req) (*Resp, apierror.ErrorResponse)
	Update(ctx context.Context, id string, req *Req) (*Resp, apierror.ErrorResponse)
	Delete(ctx context.Context, id string) apierror.ErrorResponse
}

// DefaultRecordRoute exposes one record table under /api/<plural>.
type DefaultRecordRoute[Req any, Resp any] struct {
	Service RecordService[Req, Resp]
	Plural  string
}

func NewRecordRoute[Req any, Resp any](service RecordService[Req, Resp], plural string) *DefaultRecordRoute[Req, Resp] {
	return &DefaultRecordRoute[Req, Resp]{Service: service, Plural: plural}
}

// Register mounts the five record routes on g.
func (r *DefaultRecordRoute[Req, Resp]) Register(g *echo.Group) {
	g.GET("/"+r.Plural, r.List)
	g.GET("/"+r.Plural+"/:id", r.Get)
	g.POST("/"+r.Plural, r.Create)
	g.PUT("/"+r.Plural+"/:id", r.Update)
	g.DELETE("/"+r.Plural+"/:id", r.Delete)
}

func (r *DefaultRecordRoute[Req, Resp]) List(c echo.Context) error {
	recs, apierr := r.Service.List(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{r.Plural: recs}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRecordRoute[Req, Resp]) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	rec, apierr := r.Service.Get(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, rec)
}

func (r *DefaultRecordRoute[Req, Resp]) Create(c echo.Context) error {
	var req Req
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	rec, apierr := r.Service.Create(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (r *DefaultRecordRoute[Req, Resp]) Update(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req Req
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	rec, apierr := r.Service.Update(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, rec)
}

func (r *DefaultRecordRoute[Req, Resp]) Delete(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	if apierr := r.Service.Delete(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

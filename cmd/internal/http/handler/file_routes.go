package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type FileService interface {
	ListFiles(ctx context.Context) ([]*contract.FileResponse, apierror.ErrorResponse)
	UploadFile(ctx context.Context, name string, fileHeader *multipart.FileHeader) (*contract.FileResponse, apierror.ErrorResponse)
	DeleteFile(ctx context.Context, name string) apierror.ErrorResponse
	FileURL(name string) (*contract.FileURLResponse, apierror.ErrorResponse)
}

type DefaultFileRoute struct {
	FileService FileService
}

func NewFileRoute(fileService FileService) *DefaultFileRoute {
	return &DefaultFileRoute{FileService: fileService}
}

func (f *DefaultFileRoute) GetFiles(c echo.Context) error {
	files, apierr := f.FileService.ListFiles(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"files": files}
	return c.JSON(http.StatusOK, &resp)
}

func (f *DefaultFileRoute) UploadFile(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		mediaTypeError := apierror.InvalidMediaTypeError
		return c.JSON(http.StatusUnsupportedMediaType, &mediaTypeError)
	}

	fileHeader, err := c.FormFile("content")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	file, apierr := f.FileService.UploadFile(c.Request().Context(), c.FormValue("name"), fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, file)
}

func (f *DefaultFileRoute) DeleteFile(c echo.Context) error {
	if apierr := f.FileService.DeleteFile(c.Request().Context(), fileParam(c)); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (f *DefaultFileRoute) GetFileURL(c echo.Context) error {
	url, apierr := f.FileService.FileURL(fileParam(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, url)
}

package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"slices"
	"strings"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/gommon/log"
)

type FileService struct {
	Store backend.FileStore
}

func NewFileService(store backend.FileStore) *FileService {
	return &FileService{Store: store}
}

func (f *FileService) ListFiles(ctx context.Context) ([]*contract.FileResponse, apierror.ErrorResponse) {
	objects, err := f.Store.List(ctx, backend.PublicPrefix)
	if err != nil {
		log.Errorf("failed to list files: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.FileResponse, len(objects))
	for i, obj := range objects {
		resp[i] = toFileResponse(obj)
	}
	return resp, nil
}

// UploadFile stores the multipart file under name. The content type sent by
// the client wins, data is sniffed only when it is missing or generic.
func (f *FileService) UploadFile(ctx context.Context, name string, fileHeader *multipart.FileHeader) (*contract.FileResponse, apierror.ErrorResponse) {
	name = strings.TrimSpace(name)
	if fileHeader == nil || name == "" {
		return nil, apierror.MissingFileNameError
	}

	if strings.Contains(name, "/") {
		return nil, apierror.InvalidFileNameError
	}

	if fileHeader.Size > contract.MaxFileSizeBytes {
		return nil, apierror.NewFileTooLargeError(contract.MaxFileSizeBytes)
	}

	existing, err := f.Store.List(ctx, backend.PublicPrefix)
	if err != nil {
		log.Errorf("failed to list files: %v", err)
		return nil, apierror.InternalServerError
	}
	if slices.ContainsFunc(existing, func(o backend.FileObject) bool { return o.Name == name }) {
		return nil, apierror.FileAlreadyExistError
	}

	data, apierr := readUpload(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}

	key := backend.PublicPrefix + name
	if err := f.Store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		log.Errorf("failed to upload file %s: %v", key, err)
		return nil, apierror.InternalServerError
	}

	return &contract.FileResponse{
		Name: name,
		Type: contentType,
		Size: int64(len(data)),
	}, nil
}

func (f *FileService) DeleteFile(ctx context.Context, name string) apierror.ErrorResponse {
	if strings.TrimSpace(name) == "" {
		return apierror.NewMissingParamError("name")
	}

	if err := f.Store.Remove(ctx, backend.PublicPrefix+name); err != nil {
		log.Errorf("failed to delete file %s: %v", name, err)
		return apierror.InternalServerError
	}
	return nil
}

func (f *FileService) FileURL(name string) (*contract.FileURLResponse, apierror.ErrorResponse) {
	if strings.TrimSpace(name) == "" {
		return nil, apierror.NewMissingParamError("name")
	}

	url, err := f.Store.PublicURL(backend.PublicPrefix + name)
	if err != nil {
		log.Errorf("failed to build url for %s: %v", name, err)
		return nil, apierror.InternalServerError
	}
	return &contract.FileURLResponse{Name: name, URL: url}, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}

func toFileResponse(obj backend.FileObject) *contract.FileResponse {
	resp := &contract.FileResponse{
		Name: obj.Name,
		Type: obj.Type,
		Size: obj.Size,
	}
	if resp.Type == "" {
		resp.Type = "application/octet-stream"
	}
	resp.CreatedAt = formatTime(obj.CreatedAt)
	return resp
}

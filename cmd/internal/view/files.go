package view

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"fostercare/cmd/internal/backend"

	"github.com/gabriel-vasile/mimetype"
)

const (
	FilePrefix      = backend.PublicPrefix
	DefaultFileType = "application/octet-stream"
	MaxUploadSize   = 30 << 20
)

var (
	ErrUploadInFlight = errors.New("an upload is already in progress")
	ErrInvalidUpload  = errors.New("Please provide a valid file and name.")
	ErrInvalidName    = errors.New("File names cannot contain '/'")
	ErrFileTooLarge   = errors.New("The selected file is larger than 30 MB.")
	ErrFileExists     = errors.New("A file with this name already exists")
)

type FileItem struct {
	Name      string
	Type      string
	Size      int64
	CreatedAt time.Time
}

// SelectedFile is a file picked for upload but not sent yet.
type SelectedFile struct {
	Name string
	Type string
	Data []byte
}

// FileManager is the Files tab: the listing under FilePrefix and the upload
// modal state.
type FileManager struct {
	Files    []FileItem
	Page     int
	Order    Order
	PageSize int

	ModalOpen   bool
	FileName    string
	Selected    *SelectedFile
	IsUploading bool

	Err string

	store backend.FileStore
}

func NewFileManager(store backend.FileStore) *FileManager {
	return &FileManager{
		Page:     1,
		Order:    Asc,
		PageSize: FilePageSize,
		store:    store,
	}
}

// Load replaces the listing with the objects currently stored.
func (m *FileManager) Load(ctx context.Context) error {
	objects, err := m.store.List(ctx, FilePrefix)
	if err != nil {
		m.Err = "Error fetching files: " + err.Error()
		return err
	}

	files := make([]FileItem, 0, len(objects))
	for _, obj := range objects {
		item := FileItem{
			Name:      obj.Name,
			Type:      obj.Type,
			Size:      obj.Size,
			CreatedAt: obj.CreatedAt,
		}
		if item.Type == "" {
			item.Type = DefaultFileType
		}
		files = append(files, item)
	}

	m.Files = files
	m.Page = ClampPage(m.Page, m.PageCount())
	return nil
}

func (m *FileManager) Sorted() []FileItem {
	return Sorted(m.Files, func(f FileItem) string { return f.Name }, m.Order)
}

func (m *FileManager) Visible() []FileItem {
	return Paginate(m.Sorted(), m.Page, m.PageSize)
}

func (m *FileManager) PageCount() int {
	return PageCount(len(m.Files), m.PageSize)
}

func (m *FileManager) GoTo(page int) {
	m.Page = ClampPage(page, m.PageCount())
}

func (m *FileManager) HasNext() bool {
	return m.Page < m.PageCount()
}

func (m *FileManager) HasPrev() bool {
	return m.Page > 1
}

// Select keeps the picked file and opens the name modal. A missing or generic
// content type is replaced by one sniffed from the data.
func (m *FileManager) Select(name, contentType string, data []byte) {
	if contentType == "" || contentType == DefaultFileType {
		contentType = mimetype.Detect(data).String()
	}

	m.Selected = &SelectedFile{Name: name, Type: contentType, Data: data}
	m.ModalOpen = true
}

// Upload stores the selected file under FileName. Only one upload runs at a
// time. On failure the modal stays open so the user can retry.
func (m *FileManager) Upload(ctx context.Context) error {
	if m.IsUploading {
		return ErrUploadInFlight
	}

	name := strings.TrimSpace(m.FileName)
	if m.Selected == nil || name == "" {
		m.Err = ErrInvalidUpload.Error()
		return ErrInvalidUpload
	}
	if strings.Contains(name, "/") {
		m.Err = ErrInvalidName.Error()
		return ErrInvalidName
	}
	if len(m.Selected.Data) > MaxUploadSize {
		m.Err = ErrFileTooLarge.Error()
		return ErrFileTooLarge
	}
	if m.exists(name) {
		m.Err = ErrFileExists.Error()
		return ErrFileExists
	}

	m.IsUploading = true
	defer func() { m.IsUploading = false }()

	data := m.Selected.Data
	err := m.store.Upload(ctx, FilePrefix+name, bytes.NewReader(data), int64(len(data)), m.Selected.Type)
	if err != nil {
		m.Err = "Upload failed: " + err.Error()
		return err
	}

	if err := m.Load(ctx); err != nil {
		return err
	}

	m.FileName = ""
	m.Selected = nil
	m.ModalOpen = false
	m.Err = ""
	return nil
}

func (m *FileManager) exists(name string) bool {
	return slices.ContainsFunc(m.Files, func(f FileItem) bool { return f.Name == name })
}

func (m *FileManager) CloseModal() {
	m.FileName = ""
	m.Selected = nil
	m.ModalOpen = false
}

// Delete removes the object, then drops it from the listing.
func (m *FileManager) Delete(ctx context.Context, name string) error {
	if err := m.store.Remove(ctx, FilePrefix+name); err != nil {
		m.Err = "Delete failed: " + err.Error()
		return err
	}

	m.Files = slices.DeleteFunc(m.Files, func(f FileItem) bool { return f.Name == name })
	m.Page = ClampPage(m.Page, m.PageCount())
	return nil
}

// ViewURL returns the public link of a stored file.
func (m *FileManager) ViewURL(name string) (string, error) {
	url, err := m.store.PublicURL(FilePrefix + name)
	if err != nil {
		m.Err = "Error retrieving file URL: " + err.Error()
		return "", err
	}
	if url == "" {
		err := errors.New("Public URL not available for this file.")
		m.Err = err.Error()
		return "", err
	}
	return url, nil
}

package view

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"
	"unicode/utf8"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils"
)

type FieldKind int

const (
	Text FieldKind = iota
	TextArea
	Date
	Phone
)

// PhotoKey is the value key the editor writes the persisted photo URL to.
const PhotoKey = "photo_url"

type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool

	// MaxLen caps the value in characters, zero means no limit.
	MaxLen int
}

// FieldGroup is one tab of an editor. Editors with a single group render
// without a tab strip.
type FieldGroup struct {
	Name   string
	Fields []Field
}

// EditorSpec describes the form of one record type.
type EditorSpec[T backend.Record] struct {
	Noun     string
	Groups   []FieldGroup
	HasPhoto bool

	// Values flattens a record into form values keyed by field name.
	Values func(rec T) map[string]string

	// Build turns form values back into a record.
	Build func(id string, values map[string]string) T
}

func (s *EditorSpec[T]) field(name string) (Field, bool) {
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

// PhotoUploader persists a picked photo and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// Photo holds the persisted photo URL and a picked, not yet uploaded file.
type Photo struct {
	URL         string
	pending     []byte
	pendingType string
}

// DataURL previews the picked file. It is empty when nothing was picked or
// the file is not an image.
func (p *Photo) DataURL() string {
	if len(p.pending) == 0 || !strings.HasPrefix(p.pendingType, "image/") {
		return ""
	}
	return "data:" + p.pendingType + ";base64," + base64.StdEncoding.EncodeToString(p.pending)
}

func (p *Photo) Pending() bool {
	return len(p.pending) > 0
}

// FormError lists the fields that failed validation, keyed by field name.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return strings.Join(parts, "; ")
}

// Editor is the modal form state for creating or editing one record.
type Editor[T backend.Record] struct {
	spec     *EditorSpec[T]
	uploader PhotoUploader

	ID          string
	Values      map[string]string
	ActiveGroup string
	Photo       Photo
	Errors      map[string]string
	Open        bool
}

// NewEditor opens an editor. A nil record starts a blank create form.
func NewEditor[T backend.Record](spec *EditorSpec[T], rec *T, uploader PhotoUploader) *Editor[T] {
	e := &Editor[T]{
		spec:     spec,
		uploader: uploader,
		Values:   make(map[string]string),
		Errors:   make(map[string]string),
		Open:     true,
	}

	if len(spec.Groups) > 0 {
		e.ActiveGroup = spec.Groups[0].Name
	}

	for _, g := range spec.Groups {
		for _, f := range g.Fields {
			e.Values[f.Name] = ""
		}
	}

	if rec != nil {
		e.ID = (*rec).GetID()
		values := spec.Values(*rec)
		for name := range e.Values {
			e.Values[name] = values[name]
		}
		e.Photo.URL = values[PhotoKey]
	}
	return e
}

func (e *Editor[T]) Creating() bool {
	return e.ID == ""
}

func (e *Editor[T]) Title() string {
	if e.Creating() {
		return "Add New " + e.spec.Noun
	}
	return "Edit " + e.spec.Noun
}

func (e *Editor[T]) SubmitLabel() string {
	if e.Creating() {
		return "Add " + e.spec.Noun
	}
	return "Update " + e.spec.Noun
}

func (e *Editor[T]) Groups() []FieldGroup {
	return e.spec.Groups
}

func (e *Editor[T]) HasPhoto() bool {
	return e.spec.HasPhoto
}

// SelectGroup switches tabs. Values of every group are kept.
func (e *Editor[T]) SelectGroup(name string) {
	for _, g := range e.spec.Groups {
		if g.Name == name {
			e.ActiveGroup = name
			return
		}
	}
}

// Set updates one field. Names the form does not have are ignored.
func (e *Editor[T]) Set(name, value string) {
	if _, ok := e.spec.field(name); ok {
		e.Values[name] = value
	}
}

// SetAll applies a batch of posted values, as a form submission does.
func (e *Editor[T]) SetAll(values map[string]string) {
	for name, value := range values {
		e.Set(name, value)
	}
}

// PickPhoto keeps the chosen file as a pending upload and previews it.
func (e *Editor[T]) PickPhoto(data []byte, contentType string) {
	if !e.spec.HasPhoto || len(data) == 0 {
		return
	}
	e.Photo.pending = bytes.Clone(data)
	e.Photo.pendingType = contentType
}

// Submit validates the form, uploads a pending photo and hands the built
// record to fn. Validation and photo failures keep the editor open, once fn
// has been called the editor closes whatever fn returned.
func (e *Editor[T]) Submit(ctx context.Context, fn func(ctx context.Context, rec T) error) error {
	values, err := e.validate()
	if err != nil {
		return err
	}

	values[PhotoKey] = e.Photo.URL
	if e.Photo.Pending() && e.uploader != nil {
		url, err := e.uploader.Upload(ctx, bytes.NewReader(e.Photo.pending))
		if err != nil {
			e.Errors[PhotoKey] = err.Error()
			return fmt.Errorf("photo upload failed: %w", err)
		}
		e.Photo = Photo{URL: url}
		values[PhotoKey] = url
	}

	rec := e.spec.Build(e.ID, values)
	err = fn(ctx, rec)
	e.Open = false
	return err
}

func (e *Editor[T]) validate() (map[string]string, error) {
	values := maps.Clone(e.Values)
	clear(e.Errors)
	firstInvalid := ""

	for _, g := range e.spec.Groups {
		for _, f := range g.Fields {
			v := strings.TrimSpace(values[f.Name])

			if f.Required && v == "" {
				e.Errors[f.Name] = "This field is required"
			} else if f.MaxLen > 0 && utf8.RuneCountInString(v) > f.MaxLen {
				e.Errors[f.Name] = fmt.Sprintf("Value is too long, max: %d", f.MaxLen)
			} else if f.Kind == Date && v != "" {
				normalized, err := utils.NormalizeDate(v)
				if err != nil {
					e.Errors[f.Name] = "Value must be a valid date"
				}
				v = normalized
			}

			if _, bad := e.Errors[f.Name]; bad && firstInvalid == "" {
				firstInvalid = g.Name
			}
			values[f.Name] = v
		}
	}

	if len(e.Errors) > 0 {
		// Show the tab holding the first problem.
		e.ActiveGroup = firstInvalid
		return nil, &FormError{Fields: maps.Clone(e.Errors)}
	}

	// Keep what the user sees in sync with what is submitted.
	maps.Copy(e.Values, values)
	return values, nil
}

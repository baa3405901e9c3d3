package handler

import (
	"context"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/domain/entity"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/view"
	"fostercare/cmd/internal/web"
)

// PickedPhoto is a photo file posted with an editor form.
type PickedPhoto struct {
	Data        []byte
	ContentType string
}

// RecordSection is one record tab of the dashboard, with the record type
// erased so the page routes can serve every tab the same way.
type RecordSection interface {
	Slug() string
	Panel(ctx context.Context, page int, order string) (*web.RecordPanel, error)
	Blank() *web.EditorForm
	Edit(ctx context.Context, id string) (*web.EditorForm, error)

	// Save creates (empty id) or updates a record from posted values. A
	// non-nil form means the editor stayed open and must be shown again.
	Save(ctx context.Context, id string, values map[string]string, photo *PickedPhoto) (*web.EditorForm, error)
	Delete(ctx context.Context, id string) error
}

type recordSection[T backend.Record] struct {
	slug    string
	newView func() *view.ListView[T]
	row     func(T) web.Row
}

func NewRecordSection[T backend.Record](slug string, newView func() *view.ListView[T], row func(T) web.Row) RecordSection {
	return &recordSection[T]{slug: slug, newView: newView, row: row}
}

func (s *recordSection[T]) Slug() string {
	return s.slug
}

func (s *recordSection[T]) Panel(ctx context.Context, page int, order string) (*web.RecordPanel, error) {
	v := s.newView()
	if order != "" {
		v.SetOrder(view.ParseOrder(order))
	}

	err := v.Load(ctx)
	v.GoTo(page)

	rows := make([]web.Row, 0, v.Spec.PageSize)
	for _, rec := range v.Visible() {
		rows = append(rows, s.row(rec))
	}

	return &web.RecordPanel{
		Title:       v.Spec.Title,
		Description: v.Spec.Description,
		AddLabel:    v.Spec.AddLabel,
		Rows:        rows,
		Pager: web.Pager{
			Slug:      s.slug,
			Page:      v.Page,
			PageCount: v.PageCount(),
			HasPrev:   v.HasPrev(),
			HasNext:   v.HasNext(),
			Order:     v.Order,
		},
	}, err
}

func (s *recordSection[T]) Blank() *web.EditorForm {
	return s.form(s.newView().OpenCreate())
}

func (s *recordSection[T]) Edit(ctx context.Context, id string) (*web.EditorForm, error) {
	ed, err := s.newView().OpenEdit(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.form(ed), nil
}

func (s *recordSection[T]) Save(ctx context.Context, id string, values map[string]string, photo *PickedPhoto) (*web.EditorForm, error) {
	v := s.newView()
	if id == "" {
		v.OpenCreate()
	} else if _, err := v.OpenEdit(ctx, id); err != nil {
		return nil, err
	}

	ed := v.Editor
	ed.SetAll(values)
	if photo != nil {
		ed.PickPhoto(photo.Data, photo.ContentType)
	}

	err := v.SubmitEditor(ctx)
	if ed.Open {
		return s.form(ed), err
	}
	return nil, err
}

func (s *recordSection[T]) Delete(ctx context.Context, id string) error {
	return s.newView().Delete(ctx, id)
}

func (s *recordSection[T]) form(ed *view.Editor[T]) *web.EditorForm {
	action := "/dashboard/" + s.slug
	if !ed.Creating() {
		action += "/" + ed.ID
	}

	return &web.EditorForm{
		Slug:        s.slug,
		ID:          ed.ID,
		Title:       ed.Title(),
		SubmitLabel: ed.SubmitLabel(),
		Action:      action,
		Groups:      ed.Groups(),
		ActiveGroup: ed.ActiveGroup,
		Values:      ed.Values,
		Errors:      ed.Errors,
		HasPhoto:    ed.HasPhoto(),
		Photo:       ed.Photo.URL,
		PhotoData:   ed.Photo.DataURL(),
	}
}

func ChildRow(c *entity.Child) web.Row {
	return web.Row{
		ID:       c.ID,
		Name:     c.DisplayName(),
		PhotoURL: c.PhotoURL,
		Details: []web.Detail{
			{Label: "Date of Birth", Value: c.DateOfBirth},
			{Label: "Gender", Value: c.Gender},
			{Label: "Social Worker", Value: c.SocialWorker},
			{Label: "Placement Status", Value: c.PlacementStatus},
		},
	}
}

func FamilyRow(f *entity.Family) web.Row {
	second := f.P2FirstName + " " + f.P2LastName
	return web.Row{
		ID:       f.ID,
		Name:     f.DisplayName(),
		PhotoURL: f.PhotoURL,
		Details: []web.Detail{
			{Label: "Second Parent", Value: trimmed(second)},
			{Label: "Date of Birth", Value: f.DateOfBirth},
			{Label: "Contact", Value: f.ContactNumber},
		},
	}
}

func StaffRow(s *entity.Staff) web.Row {
	return web.Row{
		ID:       s.ID,
		Name:     s.DisplayName(),
		PhotoURL: s.PhotoURL,
		Details: []web.Detail{
			{Label: "Position", Value: s.Position},
			{Label: "Date of Birth", Value: s.DateOfBirth},
			{Label: "Contact", Value: s.ContactNumber},
		},
	}
}

func NoteRow(n *entity.Note) web.Row {
	return web.Row{
		ID:   n.ID,
		Name: n.Title,
		Details: []web.Detail{
			{Label: "Content", Value: n.Content},
			{Label: "Created", Value: utils.FormatEpoch(n.CreatedAt)},
		},
	}
}

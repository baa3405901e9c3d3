package view

import (
	"context"
	"errors"
	"slices"

	"fostercare/cmd/internal/backend"
)

var ErrSubmitInFlight = errors.New("a submission is already in progress")

type ListSpec[T backend.Record] struct {
	Title       string
	Description string
	AddLabel    string
	PageSize    int
	SortKey     func(T) string
	Editor      *EditorSpec[T]

	// DefaultOrder applies until the user picks one. Empty keeps the order
	// records were loaded in, newest first.
	DefaultOrder Order
}

// ListView holds one record type's list screen: the loaded records, the
// current page and sort, and the open editor if any.
type ListView[T backend.Record] struct {
	Spec    ListSpec[T]
	Records []T
	Page    int
	Order   Order
	Editor  *Editor[T]

	// Err is the message of the last failed remote call, shown as a banner.
	Err string

	repo       backend.Records[T]
	photos     PhotoUploader
	submitting bool
}

func NewListView[T backend.Record](spec ListSpec[T], repo backend.Records[T], photos PhotoUploader) *ListView[T] {
	return &ListView[T]{
		Spec:   spec,
		Page:   1,
		Order:  spec.DefaultOrder,
		repo:   repo,
		photos: photos,
	}
}

// Load replaces the local records with the full remote set.
func (v *ListView[T]) Load(ctx context.Context) error {
	recs, err := v.repo.SelectAll(ctx)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Records = recs
	v.Page = ClampPage(v.Page, v.PageCount())
	return nil
}

func (v *ListView[T]) Sorted() []T {
	if v.Order == "" {
		return slices.Clone(v.Records)
	}
	return Sorted(v.Records, v.Spec.SortKey, v.Order)
}

// Visible is the current page of the sorted records.
func (v *ListView[T]) Visible() []T {
	return Paginate(v.Sorted(), v.Page, v.Spec.PageSize)
}

func (v *ListView[T]) PageCount() int {
	return PageCount(len(v.Records), v.Spec.PageSize)
}

func (v *ListView[T]) SetOrder(order Order) {
	v.Order = order
}

func (v *ListView[T]) GoTo(page int) {
	v.Page = ClampPage(page, v.PageCount())
}

func (v *ListView[T]) Next() {
	v.GoTo(v.Page + 1)
}

func (v *ListView[T]) Prev() {
	v.GoTo(v.Page - 1)
}

func (v *ListView[T]) HasNext() bool {
	return v.Page < v.PageCount()
}

func (v *ListView[T]) HasPrev() bool {
	return v.Page > 1
}

// OpenCreate opens a blank editor.
func (v *ListView[T]) OpenCreate() *Editor[T] {
	v.Editor = NewEditor(v.Spec.Editor, nil, v.photos)
	return v.Editor
}

// OpenEdit fetches the record fresh from the backend and opens it for editing.
func (v *ListView[T]) OpenEdit(ctx context.Context, id string) (*Editor[T], error) {
	rec, err := v.repo.SelectByID(ctx, id)
	if err != nil {
		v.Err = err.Error()
		return nil, err
	}

	v.Editor = NewEditor(v.Spec.Editor, &rec, v.photos)
	return v.Editor, nil
}

func (v *ListView[T]) CloseModal() {
	v.Editor = nil
}

// SubmitEditor submits the open editor into Submit. The modal closes once
// the record reached the backend call, whether or not it succeeded.
func (v *ListView[T]) SubmitEditor(ctx context.Context) error {
	if v.Editor == nil {
		return errors.New("no editor is open")
	}

	err := v.Editor.Submit(ctx, v.Submit)
	if !v.Editor.Open {
		v.Editor = nil
	}
	return err
}

// Submit inserts records without an id and updates the others. Local state
// changes only after the backend accepted the write.
func (v *ListView[T]) Submit(ctx context.Context, rec T) error {
	if v.submitting {
		return ErrSubmitInFlight
	}
	v.submitting = true
	defer func() { v.submitting = false }()

	if rec.GetID() == "" {
		stored, err := v.repo.Insert(ctx, rec)
		if err != nil {
			v.Err = err.Error()
			return err
		}
		v.Records = slices.Insert(v.Records, 0, stored)
		v.Err = ""
		return nil
	}

	stored, err := v.repo.Update(ctx, rec)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	i := slices.IndexFunc(v.Records, func(r T) bool { return r.GetID() == stored.GetID() })
	if i >= 0 {
		v.Records[i] = stored
	}
	v.Err = ""
	return nil
}

// Submitting reports whether a Submit call is running.
func (v *ListView[T]) Submitting() bool {
	return v.submitting
}

// Delete removes the record remotely, then locally.
func (v *ListView[T]) Delete(ctx context.Context, id string) error {
	if err := v.repo.Delete(ctx, id); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Records = slices.DeleteFunc(v.Records, func(r T) bool { return r.GetID() == id })
	v.Page = ClampPage(v.Page, v.PageCount())
	v.Err = ""
	return nil
}

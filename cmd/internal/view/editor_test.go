package view

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"fostercare/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	got []byte
	url string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.got, _ = io.ReadAll(r)
	return f.url, nil
}

func capture[T any](dst *T) func(context.Context, T) error {
	return func(_ context.Context, rec T) error {
		*dst = rec
		return nil
	}
}

func TestEditor_ChildTabsKeepValues(t *testing.T) {
	ed := NewEditor(ChildEditor, nil, nil)

	require.Len(t, ed.Groups(), 4)
	assert.Equal(t, "Basic Information", ed.ActiveGroup)

	ed.Set("first_name", "Amy")
	ed.SelectGroup("Family/Support")
	ed.Set("social_worker", "Dana")
	ed.SelectGroup("Medical")
	ed.Set("behavioural_needs", "quiet space")
	ed.SelectGroup("Education/Placement")
	ed.Set("placement_status", "long term")
	ed.SelectGroup("No Such Tab")

	assert.Equal(t, "Education/Placement", ed.ActiveGroup)
	assert.Equal(t, "Amy", ed.Values["first_name"])
	assert.Equal(t, "Dana", ed.Values["social_worker"])
	assert.Equal(t, "quiet space", ed.Values["behavioural_needs"])
	assert.Equal(t, "long term", ed.Values["placement_status"])
}

func TestEditor_SeedFromRecord(t *testing.T) {
	child := &entity.Child{FirstName: "Amy", LastName: "Young", PhotoURL: "http://x/p.jpg"}
	child.ID = "42"

	ed := NewEditor(ChildEditor, &child, nil)
	assert.False(t, ed.Creating())
	assert.Equal(t, "Update Child", ed.SubmitLabel())
	assert.Equal(t, "Young", ed.Values["last_name"])
	assert.Equal(t, "", ed.Values["medical_information"], "absent fields default to empty")
	assert.Equal(t, "http://x/p.jpg", ed.Photo.URL)
	assert.Empty(t, ed.Photo.DataURL())
}

func TestEditor_SubmitBuildsRecord(t *testing.T) {
	ed := NewEditor(ChildEditor, nil, nil)
	ed.SetAll(map[string]string{
		"first_name":    "  Amy ",
		"last_name":     "Young",
		"date_of_birth": "March 4, 2012",
		"unknown_field": "ignored",
	})

	var got *entity.Child
	require.NoError(t, ed.Submit(context.Background(), capture(&got)))

	assert.False(t, ed.Open)
	assert.Equal(t, "", got.ID)
	assert.Equal(t, "Amy", got.FirstName)
	assert.Equal(t, "2012-03-04", got.DateOfBirth)
}

func TestEditor_InvalidDate(t *testing.T) {
	ed := NewEditor(StaffEditor, nil, nil)
	ed.SetAll(map[string]string{
		"first_name":     "Sam",
		"last_name":      "Lee",
		"date_of_birth":  "not a date",
		"contact_number": "555",
	})

	var got *entity.Staff
	err := ed.Submit(context.Background(), capture(&got))

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Value must be a valid date", formErr.Fields["date_of_birth"])
	assert.True(t, ed.Open)
	assert.Nil(t, got)
}

func TestEditor_RejectsOverlongValues(t *testing.T) {
	ed := NewEditor(ChildEditor, nil, nil)
	ed.SetAll(map[string]string{
		"first_name":       "Amy",
		"last_name":        "Young",
		"date_of_birth":    "2015-04-02",
		"placement_status": strings.Repeat("é", 121),
	})

	err := ed.Submit(context.Background(), func(context.Context, *entity.Child) error { return nil })
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, map[string]string{"placement_status": "Value is too long, max: 120"}, formErr.Fields)
	assert.Equal(t, "Education/Placement", ed.ActiveGroup)
	assert.True(t, ed.Open)

	ed.Set("placement_status", strings.Repeat("é", 120))
	assert.NoError(t, ed.Submit(context.Background(), func(context.Context, *entity.Child) error { return nil }))
}

func TestEditor_ValidationShowsFirstInvalidTab(t *testing.T) {
	ed := NewEditor(ChildEditor, nil, nil)
	ed.SelectGroup("Medical")

	err := ed.Submit(context.Background(), func(context.Context, *entity.Child) error { return nil })
	require.Error(t, err)
	assert.Equal(t, "Basic Information", ed.ActiveGroup)
	assert.Equal(t, "date_of_birth: This field is required; first_name: This field is required; last_name: This field is required", err.Error())
}

func TestEditor_PhotoUploadedOnSubmit(t *testing.T) {
	up := &fakeUploader{url: "https://cdn/photos/abc.jpg"}
	ed := NewEditor(FamilyEditor, nil, up)
	ed.SetAll(map[string]string{
		"p1_first_name":  "Pat",
		"p1_last_name":   "Doe",
		"date_of_birth":  "1980-05-05",
		"contact_number": "0123",
	})

	ed.PickPhoto([]byte("jpegbytes"), "image/jpeg")
	assert.True(t, strings.HasPrefix(ed.Photo.DataURL(), "data:image/jpeg;base64,"))

	var got *entity.Family
	require.NoError(t, ed.Submit(context.Background(), capture(&got)))
	assert.Equal(t, []byte("jpegbytes"), up.got)
	assert.Equal(t, "https://cdn/photos/abc.jpg", got.PhotoURL)
}

func TestEditor_PhotoWithoutUploaderIsPreviewOnly(t *testing.T) {
	staff := &entity.Staff{FirstName: "Sam", LastName: "Lee", DateOfBirth: "1990-01-01", ContactNumber: "1", PhotoURL: "old.jpg"}
	staff.ID = "7"
	ed := NewEditor(StaffEditor, &staff, nil)
	ed.PickPhoto([]byte("new"), "image/png")

	var got *entity.Staff
	require.NoError(t, ed.Submit(context.Background(), capture(&got)))
	assert.Equal(t, "old.jpg", got.PhotoURL)
	assert.Equal(t, "7", got.ID)
}

func TestEditor_PhotoUploadFailureKeepsOpen(t *testing.T) {
	up := &fakeUploader{err: errors.New("the selected photo is not a supported image")}
	ed := NewEditor(StaffEditor, nil, up)
	ed.SetAll(map[string]string{"first_name": "Sam", "last_name": "Lee", "date_of_birth": "1990-01-01", "contact_number": "1"})
	ed.PickPhoto([]byte("nope"), "text/plain")

	called := false
	err := ed.Submit(context.Background(), func(context.Context, *entity.Staff) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "not a supported image")
	assert.False(t, called)
	assert.True(t, ed.Open)
	assert.Contains(t, ed.Errors, PhotoKey)
}

func TestEditor_NoteHasNoPhoto(t *testing.T) {
	ed := NewEditor(NoteEditor, nil, &fakeUploader{})
	ed.PickPhoto([]byte("x"), "image/png")
	assert.False(t, ed.HasPhoto())
	assert.False(t, ed.Photo.Pending())
}

package web

import "fostercare/cmd/internal/view"

// Page names accepted by Renderer.Render.
const (
	LoginPage     = "login"
	SignupPage    = "signup"
	ConfirmPage   = "confirm"
	DashboardPage = "dashboard"
)

// AuthForm backs the login, signup and confirm-email pages.
type AuthForm struct {
	Email string
	Error string
	Info  string
}

type Dashboard struct {
	Email  string
	Tabs   []view.Tab
	Active view.Tab
	Error  string

	// Exactly one of Records and Files is set, depending on the active tab.
	Records *RecordPanel
	Files   *FilePanel

	Editor *EditorForm
}

// Row is one record card.
type Row struct {
	ID       string
	Name     string
	PhotoURL string
	Details  []Detail
}

type Detail struct {
	Label string
	Value string
}

// Pager carries the paging and sort controls of a tab.
type Pager struct {
	Slug      string
	Page      int
	PageCount int
	HasPrev   bool
	HasNext   bool
	Order     view.Order
}

type RecordPanel struct {
	Title       string
	Description string
	AddLabel    string
	Rows        []Row
	Pager
}

type FilePanel struct {
	Files []view.FileItem
	Pager

	FileName string
	Token    string
}

// EditorForm is a modal editor rendered as a form. Every group is rendered,
// the active one expanded.
type EditorForm struct {
	Slug        string
	ID          string
	Title       string
	SubmitLabel string
	Action      string
	Token       string
	Groups      []view.FieldGroup
	ActiveGroup string
	Values      map[string]string
	Errors      map[string]string
	HasPhoto    bool

	// Photo is the stored photo URL, PhotoData a data URL preview of a photo
	// picked but not uploaded yet.
	Photo     string
	PhotoData string
}

package web

import (
	"bytes"
	"testing"
	"time"

	"fostercare/cmd/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page string, data any) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data, nil))
	return buf.String()
}

func TestRenderAuthPages(t *testing.T) {
	tests := []struct {
		page string
		data AuthForm
		want []string
	}{
		{page: LoginPage, data: AuthForm{Email: "a@b.org", Error: "Invalid credentials. Please try again."}, want: []string{"Sign in", `value="a@b.org"`, "Invalid credentials"}},
		{page: SignupPage, data: AuthForm{}, want: []string{"Create an account", `action="/auth/signup"`}},
		{page: ConfirmPage, data: AuthForm{Email: "a@b.org", Info: "Code sent"}, want: []string{"Confirm your email", "Code sent", "/auth/confirm-email/resend"}},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			out := render(t, tt.page, tt.data)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderDashboardRecords(t *testing.T) {
	out := render(t, DashboardPage, &Dashboard{
		Email:  "worker@agency.org",
		Tabs:   view.Tabs,
		Active: view.Tabs[0],
		Records: &RecordPanel{
			Title:    "Foster Children",
			AddLabel: "+ Add Foster Child",
			Rows: []Row{
				{ID: "7", Name: "Amy Young", Details: []Detail{{Label: "Date of Birth", Value: "2015-04-02"}}},
			},
			Pager: Pager{Slug: "children", Page: 1, PageCount: 1, Order: view.Asc},
		},
		Editor: &EditorForm{
			Slug:        "children",
			Title:       "Add New Child",
			SubmitLabel: "Add Child",
			Action:      "/dashboard/children",
			Token:       "tok",
			Groups:      view.ChildEditor.Groups,
			ActiveGroup: "Medical",
			Values:      map[string]string{"first_name": "Amy"},
			Errors:      map[string]string{"last_name": "This field is required"},
			HasPhoto:    true,
		},
	})

	assert.Contains(t, out, "Amy Young")
	assert.Contains(t, out, "/dashboard/children/7/edit")
	assert.Contains(t, out, "Page 1 of 1")
	assert.Contains(t, out, "Add New Child")
	assert.Contains(t, out, `value="Amy"`)
	assert.Contains(t, out, "This field is required")
	assert.Contains(t, out, `class="active">Foster Children`)
}

func TestRenderDashboardFiles(t *testing.T) {
	out := render(t, DashboardPage, &Dashboard{
		Tabs:   view.Tabs,
		Active: view.Tabs[4],
		Files: &FilePanel{
			Files: []view.FileItem{
				{Name: "care plan.pdf", Type: "application/pdf", Size: 2048, CreatedAt: time.Now().Add(-time.Hour)},
			},
			Pager: Pager{Slug: "files", Page: 1, PageCount: 1, Order: view.Asc},
		},
	})

	assert.Contains(t, out, "care plan.pdf")
	assert.Contains(t, out, "/dashboard/files/care%20plan.pdf/view")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "1 hour ago")
}

func TestRenderEditorPhoto(t *testing.T) {
	cases := []struct {
		name     string
		form     EditorForm
		contains string
		absent   string
	}{
		{
			name:     "stored https url",
			form:     EditorForm{Photo: "https://cdn.example/photos/a.jpg"},
			contains: `src="https://cdn.example/photos/a.jpg"`,
		},
		{
			name:     "stored script url is filtered",
			form:     EditorForm{Photo: "javascript:alert(document.domain)"},
			contains: `src="#ZgotmplZ"`,
			absent:   "javascript:",
		},
		{
			name:     "picked image preview",
			form:     EditorForm{Photo: "https://cdn.example/a.jpg", PhotoData: "data:image/png;base64,AAAA"},
			contains: `src="data:image/png;base64,AAAA"`,
			absent:   "cdn.example",
		},
		{
			name:     "non image data is filtered",
			form:     EditorForm{PhotoData: "data:text/html;base64,AAAA"},
			contains: `src="#ZgotmplZ"`,
			absent:   "data:text/html",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := tc.form
			form.Slug = "staff"
			form.Action = "/dashboard/staff"
			form.Groups = view.StaffEditor.Groups
			form.HasPhoto = true

			out := render(t, DashboardPage, &Dashboard{
				Tabs:   view.Tabs,
				Active: view.Tabs[2],
				Editor: &form,
			})
			assert.Contains(t, out, tc.contains)
			if tc.absent != "" {
				assert.NotContains(t, out, tc.absent)
			}
		})
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil, nil))
}

package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"fostercare/cmd/internal/view"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

var pages = []string{LoginPage, SignupPage, ConfirmPage, DashboardPage}

// Renderer renders the embedded pages. Each page is parsed together with the
// layout and partials so their blocks do not collide.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

var funcs = template.FuncMap{
	"bytes": func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	},
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	},
	"escape": url.PathEscape,
	"input":  inputType,
	"textarea": func(k view.FieldKind) bool {
		return k == view.TextArea
	},
	"orders": func() []view.Order {
		return []view.Order{view.Asc, view.Desc, view.Natural}
	},
	"prev":      func(p int) int { return p - 1 },
	"next":      func(p int) int { return p + 1 },
	"imageData": imageData,
}

func inputType(k view.FieldKind) string {
	switch k {
	case view.Date:
		return "date"
	case view.Phone:
		return "tel"
	default:
		return "text"
	}
}

// imageData trusts inline image previews only, anything else is left to the
// template's URL filter.
func imageData(s string) any {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s)
	}
	return s
}

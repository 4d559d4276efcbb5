package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbenner/invtrack/internal/auth"
	"github.com/mbenner/invtrack/internal/mail"
	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/report"
	webembed "github.com/mbenner/invtrack/web"
)

// Templates holds parsed HTML templates. Pages render inside the layout;
// fragments (picker options) render standalone for in-page swaps.
type Templates struct {
	pages     map[string]*template.Template
	fragments map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"roleName": func(role string) string {
			switch role {
			case "ADMIN":
				return "Admin"
			case "LEADER":
				return "Leader"
			case "MEMBER":
				return "Member"
			case "GUEST":
				return "Guest"
			case "":
				return "No role"
			default:
				return role
			}
		},
		"fmtTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"kindName": func(k model.Kind) string {
			if k == "" {
				return ""
			}
			return strings.ToUpper(string(k)[:1]) + string(k)[1:]
		},
		"cost": func(d *decimal.Decimal) string {
			if d == nil {
				return ""
			}
			return report.FormatUSD(*d)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

var pageNames = []string{
	"index.html",
	"login.html",
	"register.html",
	"contact.html",
	"summary.html",
	"inventory.html",
	"item_new.html",
	"item_edit.html",
	"notes.html",
	"profile.html",
	"password.html",
	"users.html",
	"lookups.html",
	"messages.html",
}

var fragmentNames = []string{
	"areas_options.html",
}

// LoadTemplates parses all page templates with the layout, and fragments on
// their own.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{
		pages:     make(map[string]*template.Template),
		fragments: make(map[string]*template.Template),
	}

	for _, page := range pageNames {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.pages[page] = tmpl
	}

	for _, frag := range fragmentNames {
		fragBytes, err := fs.ReadFile(tfs, frag)
		if err != nil {
			return nil, fmt.Errorf("reading fragment %s: %w", frag, err)
		}

		tmpl, err := template.New(frag).Funcs(FuncMap()).Parse(string(fragBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing fragment %s: %w", frag, err)
		}

		ts.fragments[frag] = tmpl
	}

	return ts, nil
}

// Render renders a page template inside the layout.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// RenderFragment renders a standalone fragment template.
func (ts *Templates) RenderFragment(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.fragments[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("failed to render fragment", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *auth.Claims
	Error   string
	Success string
	Info    string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	JWTSecret string
	Mail      mail.Mailer
}

package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"landing", "about", "services", "appointment", "confirmation",
	"admin_login", "admin_dashboard",
}

// pageData is what every page template receives.
type pageData struct {
	Title     string
	Page      string
	CSRFField template.HTML
	Flash     visitor.Flash
	Admin     bool
	AdminName string
	Body      any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *logging.Logger
}

// NewRenderer parses every page once.
func NewRenderer(logger *logging.Logger) (*Renderer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	funcs := template.FuncMap{
		"longDate":  longDate,
		"shortDate": shortDate,
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: logger.Component("render")}, nil
}

// Render writes page name with status. The output is buffered so a template
// error never leaves a half-written page.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, ok := rn.pages[name]
	if !ok {
		rn.logger.Error("unknown template", "name", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	data.CSRFField = csrf.TemplateField(r)
	if data.Page == "" {
		data.Page = name
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rn.logger.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// longDate renders YYYY-MM-DD as "Monday, March 10, 2025".
func longDate(date string) string {
	t, err := parseDay(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// shortDate renders a date or backend timestamp as "Mon, Mar 10, 2025".
func shortDate(date string) string {
	t, err := parseDay(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

func parseDay(v string) (time.Time, error) {
	if len(v) >= len("2006-01-02") {
		v = v[:len("2006-01-02")]
	}
	return time.Parse("2006-01-02", v)
}

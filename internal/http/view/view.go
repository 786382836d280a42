// Package view рендерит HTML-страницы портала из встроенных шаблонов.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-portal/internal/http/session"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

//go:embed templates
var files embed.FS

const layout = "templates/layout.html"

// Page данные, доступные каждому шаблону.
type Page struct {
	Title    string
	Identity *models.Identity
	Flashes  []session.Flash
	Data     any
}

// Renderer хранит разобранные шаблоны страниц.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
	log      *slog.Logger
}

// New разбирает все шаблоны. Имя страницы "admin/dashboard" соответствует файлу templates/admin/dashboard.html.
func New(sessions *session.Manager, log *slog.Logger) (*Renderer, error) {
	const op = "view.New"

	pages := make(map[string]*template.Template)
	err := fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layout || !strings.HasSuffix(path, ".html") {
			return nil
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, layout, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{pages: pages, sessions: sessions, log: log}, nil
}

// Render выводит страницу name со статусом status. Flash-сообщения запроса показываются и удаляются.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	const op = "view.Render"

	tmpl, ok := v.pages[name]
	if !ok {
		v.log.Error("unknown page", slog.String("op", op), slog.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := Page{Title: title, Data: data, Flashes: v.sessions.PopFlashes(w, r)}
	if identity, ok := middlewarectx.IdentityFrom(r.Context()); ok {
		page.Identity = &identity
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		v.log.Error("failed to render page",
			slog.String("op", op),
			slog.String("page", name),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error выводит страницу ошибки со статусом status.
func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int) {
	v.Render(w, r, status, "error", http.StatusText(status), status)
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(models.DateLayout)
	},
	"datetime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

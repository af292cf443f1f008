// Package web holds the HTML templates, the sidebar menu and the helpers
// that render a page inside the application shell.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gestao-municipal/painel/internal/auth"
	authdomain "github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap is available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"brl":         domain.FormatBRL,
		"decimal":     domain.FormatDecimal,
		"date":        domain.FormatDate,
		"inputDate":   domain.InputDate,
		"statusLabel": domain.StatusLabel,
		"statusClass": domain.StatusClass,
		"clamp":       domain.ProgressPercent,
		"hour": func(t time.Time) string {
			return t.Format("15:04")
		},
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}
}

// Templates parses every embedded page. Template names are file names,
// e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Page is the root value handed to every template.
type Page struct {
	Title  string
	Active string
	User   *authdomain.Usuario
	Nav    []NavItem
	Now    time.Time
	Data   any
}

// Renderer wraps page data in the shell for the current user.
type Renderer struct {
	menu Menu
	now  func() time.Time
}

func NewRenderer(menu Menu) *Renderer {
	return &Renderer{menu: menu, now: time.Now}
}

// Menu returns the sidebar definition.
func (r *Renderer) Menu() Menu {
	return r.menu
}

// Page builds the shell around data for the session in c.
func (r *Renderer) Page(c *gin.Context, active, title string, data any) Page {
	p := Page{Title: title, Active: active, Now: r.now(), Data: data}
	if s := auth.SessionFrom(c); s != nil && s.User != nil {
		p.User = s.User
		p.Nav = r.menu.For(s.User.NivelAcesso, active)
	} else {
		p.Nav = r.menu.For("", active)
	}
	return p
}

// HTML renders the named template inside the shell.
func (r *Renderer) HTML(c *gin.Context, status int, name, active, title string, data any) {
	c.HTML(status, name, r.Page(c, active, title, data))
}

// Loading is served by the gate while the session store cannot answer.
// The page refreshes itself until the session resolves.
func (r *Renderer) Loading(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "loading.html", Page{Title: "Carregando...", Now: r.now()})
}

// Placeholder renders a section that has no content yet.
func (r *Renderer) Placeholder(active, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.HTML(c, http.StatusOK, "placeholder.html", active, title, nil)
	}
}

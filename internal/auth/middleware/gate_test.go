package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	sessions map[string]*domain.Session
	loading  bool
}

func (r *stubResolver) Restore(_ context.Context, id string) (*domain.Session, domain.State) {
	if r.loading {
		return nil, domain.StateLoading
	}
	if s, ok := r.sessions[id]; ok {
		return s, domain.StateAuthenticated
	}
	return nil, domain.StateUnauthenticated
}

var testCookie = auth.CookieConfig{Name: "painel_session"}

func newGateRouter(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gate := NewGate(resolver, testCookie)

	loading := func(c *gin.Context) { c.String(http.StatusOK, "Carregando...") }

	pages := r.Group("/", gate.Pages(loading))
	pages.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	pages.POST("/secretarias/:id", func(c *gin.Context) { c.String(http.StatusSeeOther, "salvo") })
	pages.GET("/projetos", func(c *gin.Context) {
		c.String(http.StatusOK, "projetos de "+auth.SessionFrom(c).User.Nome)
	})

	r.GET("/login", gate.GuestOnly(), func(c *gin.Context) { c.String(http.StatusOK, "login") })

	api := r.Group("/painel/api", gate.API())
	api.GET("/projetos", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func doRequest(r http.Handler, path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: sessionID})
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGate_RedirectsUnauthenticated(t *testing.T) {
	r := newGateRouter(&stubResolver{})

	for _, path := range []string{"/", "/projetos"} {
		rr := doRequest(r, path, "")
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}

	rr := doRequest(r, "/projetos", "stale-id")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "painel_session=;")
}

func TestGate_AllowsAuthenticated(t *testing.T) {
	r := newGateRouter(&stubResolver{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", Token: "tok", User: &domain.Usuario{Nome: "Ana"}},
	}})

	rr := doRequest(r, "/projetos", "s1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "projetos de Ana", rr.Body.String())
}

func TestGate_LoadingShowsPlaceholder(t *testing.T) {
	r := newGateRouter(&stubResolver{loading: true})

	rr := doRequest(r, "/", "s1")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Carregando...", rr.Body.String())
	assert.Empty(t, rr.Header().Get("Location"))
}

func TestGate_LoadingRefusesSubmissions(t *testing.T) {
	r := newGateRouter(&stubResolver{loading: true})

	req := httptest.NewRequest(http.MethodPost, "/secretarias/1", strings.NewReader("nome=Obras"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: "s1"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
	assert.NotContains(t, rr.Body.String(), "Carregando...")
	assert.Empty(t, rr.Header().Get("Location"))
}

func TestGate_GuestOnly(t *testing.T) {
	r := newGateRouter(&stubResolver{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", Token: "tok"},
	}})

	rr := doRequest(r, "/login", "s1")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = doRequest(r, "/login", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "login", rr.Body.String())
}

func TestGate_API(t *testing.T) {
	r := newGateRouter(&stubResolver{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", Token: "tok"},
	}})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/painel/api/projetos", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/painel/api/projetos", "s1").Code)

	loading := newGateRouter(&stubResolver{loading: true})
	rr := doRequest(loading, "/painel/api/projetos", "s1")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
}

package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gestao-municipal/painel/internal/auth"
	authmw "github.com/gestao-municipal/painel/internal/auth/middleware"
	"github.com/gestao-municipal/painel/internal/auth/repository"
	authservice "github.com/gestao-municipal/painel/internal/auth/service"
	painelservice "github.com/gestao-municipal/painel/internal/painel/service"
	"github.com/gestao-municipal/painel/internal/painel/upstream"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRemote mimics the remote API. Setting revoked makes every
// authenticated call answer 401.
type fakeRemote struct {
	revoked atomic.Bool
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/api/auth/login" {
		_, _ = w.Write([]byte(`{"token":"tok-123","usuario":{"id":1,"nome":"Maria Souza","email":"maria@pref.gov.br","nivel_acesso":"visualizador"}}`))
		return
	}
	if r.Header.Get("Authorization") != "Bearer tok-123" || f.revoked.Load() {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	switch r.URL.Path {
	case "/api/secretarias":
		_, _ = w.Write([]byte(`{"secretarias":[{"id":1,"nome":"Secretaria de Obras","responsavel":"João","ativa":true}]}`))
	case "/api/projetos":
		_, _ = w.Write([]byte(`{"projetos":[{"id":5,"secretaria_id":1,"titulo":"Asfalto Bairro Norte","status":"execucao","progresso":30}]}`))
	case "/api/relatorios/dashboard-geral":
		_, _ = w.Write([]byte(`{"dashboard":{"estatisticas_gerais":{"total_secretarias":1,"projetos_em_execucao":1,"taxa_conclusao":0}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type app struct {
	engine *gin.Engine
	redis  *miniredis.Miniredis
	remote *fakeRemote
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client, err := OpenRedis(context.Background(), RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	remote := &fakeRemote{}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	store := repository.NewSessionRepository(client)
	api := upstream.NewClient(srv.URL, 2*time.Second)
	cookie := auth.CookieConfig{Name: "painel_session", MaxAge: time.Hour}

	engine, err := BuildRouter(RouterDeps{
		ServiceName: "painel",
		Version:     "test",
		Logger:      zap.NewNop(),
		Cookie:      cookie,
		CORSOrigins: []string{"https://portal.pref.gov.br"},
		Sessions:    authservice.NewSessionService(store, api, time.Hour),
		Store:       store,
		Upstream:    api,
		Views:       painelservice.NewViewState(),
		Limiter:     authmw.NewLoginLimiter(10, 5),
	})
	require.NoError(t, err)

	return &app{engine: engine, redis: mr, remote: remote}
}

func (a *app) request(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	body := ""
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *app) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := a.request(http.MethodPost, "/login", url.Values{"email": {"maria@pref.gov.br"}, "senha": {"x"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "painel_session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestRouter_RedirectsToLogin(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/", "/secretarias", "/projetos?status=atrasado", "/relatorios"} {
		w := a.request(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := a.request(http.MethodGet, "/painel/api/projetos", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_UnknownPathGoesHome(t *testing.T) {
	a := newApp(t)
	w := a.request(http.MethodGet, "/nao/existe", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouter_LoginAndBrowse(t *testing.T) {
	a := newApp(t)
	cookie := a.login(t)

	assert.Len(t, a.redis.Keys(), 1)
	assert.True(t, strings.HasPrefix(a.redis.Keys()[0], "painel:session:"))

	w := a.request(http.MethodGet, "/", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maria Souza")
	assert.Contains(t, w.Body.String(), "Sistema Funcionando")
	assert.NotContains(t, w.Body.String(), `href="/recursos"`)

	w = a.request(http.MethodGet, "/secretarias", nil, cookie)
	assert.Contains(t, w.Body.String(), "Secretaria de Obras")

	w = a.request(http.MethodGet, "/projetos", nil, cookie)
	assert.Contains(t, w.Body.String(), "Asfalto Bairro Norte")

	w = a.request(http.MethodGet, "/recursos", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code, "visualizador cannot open recursos")

	w = a.request(http.MethodGet, "/login", nil, cookie)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouter_RevokedTokenLogsOut(t *testing.T) {
	a := newApp(t)
	cookie := a.login(t)

	a.remote.revoked.Store(true)
	w := a.request(http.MethodGet, "/projetos", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, a.redis.Keys())

	w = a.request(http.MethodGet, "/", nil, cookie)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_StoreDownShowsLoading(t *testing.T) {
	a := newApp(t)
	cookie := a.login(t)

	a.redis.Close()
	w := a.request(http.MethodGet, "/secretarias", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Carregando...")
	assert.Empty(t, w.Header().Get("Location"))

	w = a.request(http.MethodGet, "/painel/api/secretarias", nil, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = a.request(http.MethodGet, "/health", nil, nil)
	assert.Contains(t, w.Body.String(), `"sessions":"down"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/painel/api/projetos", nil)
	req.Header.Set("Origin", "https://portal.pref.gov.br")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://portal.pref.gov.br", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Logout(t *testing.T) {
	a := newApp(t)
	cookie := a.login(t)

	w := a.request(http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, a.redis.Keys())
}

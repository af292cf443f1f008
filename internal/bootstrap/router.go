package bootstrap

import (
	"net/http"
	"time"

	httpapi "github.com/gestao-municipal/painel/internal/api/http"
	"github.com/gestao-municipal/painel/internal/api/http/middleware"
	"github.com/gestao-municipal/painel/internal/auth"
	authhttp "github.com/gestao-municipal/painel/internal/auth/http"
	authmw "github.com/gestao-municipal/painel/internal/auth/middleware"
	authservice "github.com/gestao-municipal/painel/internal/auth/service"
	painelhttp "github.com/gestao-municipal/painel/internal/painel/http"
	painelservice "github.com/gestao-municipal/painel/internal/painel/service"
	"github.com/gestao-municipal/painel/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Upstream is the remote API client as seen by the pages.
type Upstream interface {
	painelservice.DataSource
	painelservice.Writer
}

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	Cookie      auth.CookieConfig
	CORSOrigins []string
	Sessions    *authservice.SessionService
	Store       httpapi.Pinger
	Upstream    Upstream
	Views       *painelservice.ViewState
	Limiter     *authmw.LoginLimiter
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	menu, err := web.LoadMenu()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.SetHTMLTemplate(tmpl)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	renderer := web.NewRenderer(menu)
	gate := authmw.NewGate(dep.Sessions, dep.Cookie)

	authHandler := authhttp.New(dep.Sessions, dep.Views, dep.Cookie)
	authHandler.Register(r, gate.GuestOnly(), dep.Limiter.Middleware(authHandler.TooManyAttempts))

	painelHandler := painelhttp.New(painelhttp.Deps{
		Loader:   painelservice.NewLoader(dep.Upstream, dep.Views),
		Editor:   painelservice.NewEditor(dep.Upstream),
		Views:    dep.Views,
		Sessions: dep.Sessions,
		Cookie:   dep.Cookie,
		Renderer: renderer,
	})

	pages := r.Group("/", gate.Pages(renderer.Loading))
	painelHandler.RegisterPages(pages)

	api := r.Group("/painel/api")
	if len(dep.CORSOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	painelHandler.RegisterAPI(api.Group("", gate.API()))

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	return r, nil
}

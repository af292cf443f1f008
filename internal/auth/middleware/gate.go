package middleware

import (
	"context"
	"net/http"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

// SessionResolver is implemented by service.SessionService.
type SessionResolver interface {
	Restore(ctx context.Context, id string) (*domain.Session, domain.State)
}

// Gate decides, for every request, whether protected content may be served.
type Gate struct {
	resolver SessionResolver
	cookie   auth.CookieConfig
}

func NewGate(resolver SessionResolver, cookie auth.CookieConfig) *Gate {
	return &Gate{resolver: resolver, cookie: cookie}
}

func (g *Gate) resolve(c *gin.Context) (*domain.Session, domain.State) {
	return g.resolver.Restore(c.Request.Context(), g.cookie.SessionID(c))
}

// Pages protects HTML routes. Unauthenticated requests are redirected to
// /login; while the session is still loading, loading renders a placeholder
// instead of redirecting. Submissions made while loading are refused with 503
// so the placeholder's refresh never replays them as a GET.
func (g *Gate) Pages(loading gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, state := g.resolve(c)
		switch state {
		case domain.StateAuthenticated:
			auth.SetSession(c, session)
			c.Next()
		case domain.StateLoading:
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.Header("Retry-After", "2")
				c.String(http.StatusServiceUnavailable, "Sessão indisponível no momento. Tente enviar novamente.")
				c.Abort()
				return
			}
			loading(c)
			c.Abort()
		default:
			g.cookie.Clear(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
	}
}

// API protects JSON routes with status codes instead of redirects.
func (g *Gate) API() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, state := g.resolve(c)
		switch state {
		case domain.StateAuthenticated:
			auth.SetSession(c, session)
			c.Next()
		case domain.StateLoading:
			c.Header("Retry-After", "2")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session store unavailable"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		}
	}
}

// GuestOnly sends authenticated users away from the login page.
func (g *Gate) GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, state := g.resolve(c); state == domain.StateAuthenticated {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

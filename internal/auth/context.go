package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

const (
	CtxSession = "painel_session"
)

// CookieConfig describes the browser cookie that carries the session id.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionFrom returns the session stored by the gate, or nil.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}

// SetSession stores s in the gin context.
func SetSession(c *gin.Context, s *domain.Session) {
	c.Set(CtxSession, s)
}

// SessionID reads the session id cookie.
func (cc CookieConfig) SessionID(c *gin.Context) string {
	v, err := c.Cookie(cc.Name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Write sets the session cookie for id.
func (cc CookieConfig) Write(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, id, int(cc.MaxAge.Seconds()), "/", "", cc.Secure, true)
}

// Clear expires the session cookie.
func (cc CookieConfig) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, "", -1, "/", "", cc.Secure, true)
}

package http

import (
	"net/http"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// expire ends the session after the remote API answered 401.
func (h *Handler) expire(c *gin.Context) {
	ctx := c.Request.Context()
	if s := auth.SessionFrom(c); s != nil {
		if err := h.sessions.Logout(ctx, s.ID); err != nil {
			logging.FromContext(ctx).Warn("logout after rejected token", zap.Error(err))
		}
		h.views.Forget(s.ID)
	}
	h.cookie.Clear(c)
}

// expirePage logs the user out and sends them to the login page.
func (h *Handler) expirePage(c *gin.Context) {
	h.expire(c)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

func (h *Handler) expireAPI(c *gin.Context) {
	h.expire(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session expired"})
}

// requireMenu hides sections the user's nivel_acesso cannot see.
func (h *Handler) requireMenu(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := auth.SessionFrom(c)
		if s == nil || s.User == nil || !h.render.Menu().Allows(s.User.NivelAcesso, id) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/gestao-municipal/painel/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Email ou senha inválidos."
	msgAuthUnavailable    = "Não foi possível entrar agora. Tente novamente em instantes."
	msgTooManyAttempts    = "Muitas tentativas de login. Aguarde um minuto."
)

func (h *Handler) LoginForm(c *gin.Context) {
	h.loginPage(c, http.StatusOK, LoginPage{})
}

func (h *Handler) Login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		page := LoginPage{Email: creds.Email, Error: web.MsgInvalidForm}
		page.Errors, _ = web.FieldErrors(creds, err)
		h.loginPage(c, http.StatusUnprocessableEntity, page)
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)

	session, err := h.sessions.Login(c.Request.Context(), creds)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.loginPage(c, http.StatusUnauthorized, LoginPage{Email: creds.Email, Error: msgInvalidCredentials})
			return
		}
		h.loginPage(c, http.StatusServiceUnavailable, LoginPage{Email: creds.Email, Error: msgAuthUnavailable})
		return
	}

	cookie := h.cookie
	if !session.ExpiresAt.IsZero() {
		cookie.MaxAge = time.Until(session.ExpiresAt)
	}
	cookie.Write(c, session.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout works without a resolved session so a user can always leave,
// even while the session store is unavailable.
func (h *Handler) Logout(c *gin.Context) {
	id := h.cookie.SessionID(c)
	if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
		logging.FromContext(c.Request.Context()).Warn("logout", zap.Error(err))
	}
	if id != "" {
		h.views.Forget(id)
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// TooManyAttempts is served when the login limiter rejects a request.
func (h *Handler) TooManyAttempts(c *gin.Context) {
	c.Header("Retry-After", "60")
	h.loginPage(c, http.StatusTooManyRequests, LoginPage{Email: c.PostForm("email"), Error: msgTooManyAttempts})
}

func (h *Handler) loginPage(c *gin.Context, status int, page LoginPage) {
	c.HTML(status, "login.html", web.Page{Title: "Entrar", Data: page})
}

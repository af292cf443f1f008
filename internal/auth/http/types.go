package http

import (
	"context"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/auth/domain"
)

// Sessions is implemented by service.SessionService.
type Sessions interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Logout(ctx context.Context, id string) error
}

// Forgetter drops per-session cached page data on logout.
type Forgetter interface {
	Forget(sessionID string)
}

type Handler struct {
	sessions Sessions
	views    Forgetter
	cookie   auth.CookieConfig
}

func New(sessions Sessions, views Forgetter, cookie auth.CookieConfig) *Handler {
	return &Handler{
		sessions: sessions,
		views:    views,
		cookie:   cookie,
	}
}

// LoginPage is the data of login.html.
type LoginPage struct {
	Email  string
	Error  string
	Errors map[string]string
}

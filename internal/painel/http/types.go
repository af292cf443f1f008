package http

import (
	"context"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/painel/service"
	"github.com/gestao-municipal/painel/internal/web"
)

// SessionCloser ends a session whose token the remote API rejected.
type SessionCloser interface {
	Logout(ctx context.Context, id string) error
}

type Handler struct {
	loader   *service.Loader
	editor   *service.Editor
	views    *service.ViewState
	sessions SessionCloser
	cookie   auth.CookieConfig
	render   *web.Renderer
}

type Deps struct {
	Loader   *service.Loader
	Editor   *service.Editor
	Views    *service.ViewState
	Sessions SessionCloser
	Cookie   auth.CookieConfig
	Renderer *web.Renderer
}

func New(d Deps) *Handler {
	return &Handler{
		loader:   d.Loader,
		editor:   d.Editor,
		views:    d.Views,
		sessions: d.Sessions,
		cookie:   d.Cookie,
		render:   d.Renderer,
	}
}

package domain

import "time"

// Known nivel_acesso values.
const (
	NivelAdministrador = "administrador"
	NivelGestor        = "gestor"
	NivelVisualizador  = "visualizador"
)

// Usuario is the profile returned by the remote API on login.
type Usuario struct {
	ID           int64  `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	NivelAcesso  string `json:"nivel_acesso"`
	SecretariaID *int64 `json:"secretaria_id,omitempty"`
}

// Credentials is what the login form posts.
type Credentials struct {
	Email string `form:"email" json:"email" binding:"required,email"`
	Senha string `form:"senha" json:"senha" binding:"required"`
}

// LoginResult is the remote API answer to a successful login.
type LoginResult struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"usuario"`
}

// Session is the persisted login state. The browser only ever sees ID.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      *Usuario  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAuthenticated is true iff the session carries a token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// State is the resolution of a session lookup.
type State int

const (
	// StateLoading means the session store could not answer yet.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

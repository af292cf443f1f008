package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence port for sessions.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Authenticator exchanges credentials for a bearer token and profile.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
}

// SessionService owns the login state machine:
// loading -> {authenticated, unauthenticated}, authenticated -> unauthenticated
// on logout, unauthenticated -> authenticated on login only.
type SessionService struct {
	store Store
	authn Authenticator
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewSessionService(store Store, authn Authenticator, ttl time.Duration) *SessionService {
	return &SessionService{
		store: store,
		authn: authn,
		ttl:   ttl,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Login authenticates against the remote API and persists a new session.
// Every failure is an *domain.AuthError.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	logger := logging.FromContext(ctx)

	res, err := s.authn.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			logger.Info("login rejected", zap.String("email", creds.Email))
			return nil, &domain.AuthError{Op: "login", Err: domain.ErrInvalidCredentials}
		}
		logger.Warn("login failed", zap.String("email", creds.Email), zap.Error(err))
		return nil, &domain.AuthError{Op: "login", Err: fmt.Errorf("%w: %v", domain.ErrAuthUnavailable, err)}
	}
	if res == nil || res.Token == "" {
		return nil, &domain.AuthError{Op: "login", Err: fmt.Errorf("%w: empty token in response", domain.ErrAuthUnavailable)}
	}

	now := s.now()
	ttl := s.ttlFor(res.Token, now)
	if ttl <= 0 {
		return nil, &domain.AuthError{Op: "login", Err: domain.ErrTokenExpired}
	}

	user := res.Usuario
	session := &domain.Session{
		ID:        s.newID(),
		Token:     res.Token,
		User:      &user,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.store.Set(ctx, session, ttl); err != nil {
		logger.Error("persist session", zap.Error(err))
		return nil, &domain.AuthError{Op: "persist session", Err: err}
	}

	logger.Info("login succeeded",
		zap.Int64("user_id", user.ID),
		zap.String("nivel_acesso", user.NivelAcesso),
		zap.Duration("ttl", ttl))
	return session, nil
}

// Logout forgets the session. Unknown or empty ids are a no-op.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Restore resolves a session id. It returns StateLoading, and no session,
// when the store cannot answer; callers must not treat that as logged out.
func (s *SessionService) Restore(ctx context.Context, id string) (*domain.Session, domain.State) {
	if id == "" {
		return nil, domain.StateUnauthenticated
	}

	session, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil, domain.StateUnauthenticated
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		logging.FromContext(ctx).Warn("session store unavailable", zap.Error(err))
		return nil, domain.StateLoading
	case err != nil:
		// unreadable record: drop it and start over
		logging.FromContext(ctx).Warn("discarding unreadable session", zap.Error(err))
		_ = s.store.Delete(ctx, id)
		return nil, domain.StateUnauthenticated
	}

	if !session.IsAuthenticated() || session.Expired(s.now()) {
		_ = s.store.Delete(ctx, id)
		return nil, domain.StateUnauthenticated
	}
	return session, domain.StateAuthenticated
}

func (s *SessionService) ttlFor(token string, now time.Time) time.Duration {
	ttl := s.ttl
	if exp, ok := tokenExpiry(token); ok {
		if d := exp.Sub(now); d < ttl {
			ttl = d
		}
	}
	return ttl
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/auth/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	result *domain.LoginResult
	err    error
	calls  int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, _ domain.Credentials) (*domain.LoginResult, error) {
	f.calls++
	return f.result, f.err
}

// failingStore wraps a memory repository and fails on demand.
type failingStore struct {
	*repository.MemoryRepository
	getErr error
	setErr error
}

func (s *failingStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MemoryRepository.Get(ctx, id)
}

func (s *failingStore) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryRepository.Set(ctx, session, ttl)
}

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(authn Authenticator) (*SessionService, *failingStore) {
	store := &failingStore{MemoryRepository: repository.NewMemoryRepository()}
	svc := NewSessionService(store, authn, 8*time.Hour)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "session-1" }
	return svc, store
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "7",
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestSessionService_Login(t *testing.T) {
	authn := &fakeAuthenticator{result: &domain.LoginResult{
		Token:   "opaque-token",
		Usuario: domain.Usuario{ID: 7, Nome: "Maria Souza", NivelAcesso: domain.NivelVisualizador},
	}}
	svc, store := newTestService(authn)
	ctx := context.Background()

	session, err := svc.Login(ctx, domain.Credentials{Email: "maria@prefeitura.gov.br", Senha: "secreta"})
	require.NoError(t, err)

	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, "Maria Souza", session.User.Nome)
	assert.Equal(t, fixedNow.Add(8*time.Hour), session.ExpiresAt)

	persisted, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", persisted.Token)
}

func TestSessionService_Login_JWTExpiryShortensTTL(t *testing.T) {
	exp := fixedNow.Add(30 * time.Minute)
	authn := &fakeAuthenticator{result: &domain.LoginResult{Token: signedToken(t, exp)}}
	svc, _ := newTestService(authn)

	session, err := svc.Login(context.Background(), domain.Credentials{Email: "a@b.gov.br", Senha: "x"})
	require.NoError(t, err)
	assert.Equal(t, exp.Unix(), session.ExpiresAt.Unix())
}

func TestSessionService_Login_ExpiredToken(t *testing.T) {
	authn := &fakeAuthenticator{result: &domain.LoginResult{Token: signedToken(t, fixedNow.Add(-time.Minute))}}
	svc, _ := newTestService(authn)

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "a@b.gov.br", Senha: "x"})

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestSessionService_Login_Failures(t *testing.T) {
	tests := []struct {
		name    string
		authn   *fakeAuthenticator
		setErr  error
		wantErr error
	}{
		{
			name:    "invalid credentials",
			authn:   &fakeAuthenticator{err: domain.ErrInvalidCredentials},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "network failure",
			authn:   &fakeAuthenticator{err: errors.New("dial tcp: connection refused")},
			wantErr: domain.ErrAuthUnavailable,
		},
		{
			name:    "empty token",
			authn:   &fakeAuthenticator{result: &domain.LoginResult{}},
			wantErr: domain.ErrAuthUnavailable,
		},
		{
			name:    "store down",
			authn:   &fakeAuthenticator{result: &domain.LoginResult{Token: "tok"}},
			setErr:  domain.ErrStoreUnavailable,
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(tt.authn)
			store.setErr = tt.setErr

			session, err := svc.Login(context.Background(), domain.Credentials{Email: "a@b.gov.br", Senha: "x"})
			assert.Nil(t, session)

			var authErr *domain.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.Len(), "nothing is persisted on failure")
		})
	}
}

func TestSessionService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("no cookie", func(t *testing.T) {
		svc, _ := newTestService(&fakeAuthenticator{})
		s, state := svc.Restore(ctx, "")
		assert.Nil(t, s)
		assert.Equal(t, domain.StateUnauthenticated, state)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestService(&fakeAuthenticator{})
		s, state := svc.Restore(ctx, "nope")
		assert.Nil(t, s)
		assert.Equal(t, domain.StateUnauthenticated, state)
	})

	t.Run("persisted session", func(t *testing.T) {
		svc, store := newTestService(&fakeAuthenticator{})
		require.NoError(t, store.Set(ctx, &domain.Session{ID: "s1", Token: "tok"}, time.Hour))

		s, state := svc.Restore(ctx, "s1")
		require.NotNil(t, s)
		assert.Equal(t, domain.StateAuthenticated, state)
		assert.Equal(t, s.IsAuthenticated(), state == domain.StateAuthenticated)
	})

	t.Run("record without token", func(t *testing.T) {
		svc, store := newTestService(&fakeAuthenticator{})
		require.NoError(t, store.Set(ctx, &domain.Session{ID: "s1"}, time.Hour))

		s, state := svc.Restore(ctx, "s1")
		assert.Nil(t, s)
		assert.Equal(t, domain.StateUnauthenticated, state)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("expired record", func(t *testing.T) {
		svc, store := newTestService(&fakeAuthenticator{})
		require.NoError(t, store.Set(ctx, &domain.Session{ID: "s1", Token: "tok", ExpiresAt: fixedNow}, time.Hour))

		_, state := svc.Restore(ctx, "s1")
		assert.Equal(t, domain.StateUnauthenticated, state)
	})

	t.Run("store unavailable", func(t *testing.T) {
		svc, store := newTestService(&fakeAuthenticator{})
		store.getErr = domain.ErrStoreUnavailable

		s, state := svc.Restore(ctx, "s1")
		assert.Nil(t, s)
		assert.Equal(t, domain.StateLoading, state)
	})
}

func TestSessionService_Logout(t *testing.T) {
	authn := &fakeAuthenticator{result: &domain.LoginResult{Token: "tok"}}
	svc, _ := newTestService(authn)
	ctx := context.Background()

	session, err := svc.Login(ctx, domain.Credentials{Email: "a@b.gov.br", Senha: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))
	_, state := svc.Restore(ctx, session.ID)
	assert.Equal(t, domain.StateUnauthenticated, state)

	assert.NoError(t, svc.Logout(ctx, session.ID))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestTokenExpiry(t *testing.T) {
	_, ok := tokenExpiry("not-a-jwt")
	assert.False(t, ok)

	exp := fixedNow.Add(time.Hour)
	got, ok := tokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

package service

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DataSource is the read side of the remote API.
type DataSource interface {
	FetchSecretarias(ctx context.Context, token string) ([]domain.Secretaria, error)
	FetchProjetos(ctx context.Context, token string) ([]domain.Projeto, error)
	FetchDashboard(ctx context.Context, token string) (*domain.Dashboard, error)
}

// Result is what a page gets back from the loader. Fetch errors are never
// exposed; Unauthorized is the only failure a caller acts on.
type Result[T any] struct {
	Value T
	// Fresh is false when Value is the cached or empty fallback.
	Fresh        bool
	Unauthorized bool
}

// Loader fetches page data once per request without retrying. On failure it
// serves the session's previous value, or the empty value on first load.
type Loader struct {
	source DataSource
	state  *ViewState
}

func NewLoader(source DataSource, state *ViewState) *Loader {
	return &Loader{source: source, state: state}
}

func (l *Loader) Secretarias(ctx context.Context, s *authdomain.Session) Result[[]domain.Secretaria] {
	return load(ctx, l.state, s, ResourceSecretarias, []domain.Secretaria{}, l.source.FetchSecretarias)
}

func (l *Loader) Projetos(ctx context.Context, s *authdomain.Session) Result[[]domain.Projeto] {
	return load(ctx, l.state, s, ResourceProjetos, []domain.Projeto{}, l.source.FetchProjetos)
}

// Dashboard returns nil as the empty value so callers can tell a missing
// report from a report full of zeros.
func (l *Loader) Dashboard(ctx context.Context, s *authdomain.Session) Result[*domain.Dashboard] {
	return load(ctx, l.state, s, ResourceDashboard, (*domain.Dashboard)(nil), l.source.FetchDashboard)
}

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	Resumo       domain.Resumo
	Projetos     []domain.Projeto
	Unauthorized bool
}

// DashboardView fetches the report and the projetos list concurrently. The
// two calls are independent and one failing does not cancel the other.
func (l *Loader) DashboardView(ctx context.Context, s *authdomain.Session) DashboardData {
	var (
		g        errgroup.Group
		report   Result[*domain.Dashboard]
		projetos Result[[]domain.Projeto]
	)
	g.Go(func() error {
		report = l.Dashboard(ctx, s)
		return nil
	})
	g.Go(func() error {
		projetos = l.Projetos(ctx, s)
		return nil
	})
	_ = g.Wait()

	return DashboardData{
		Resumo:       domain.BuildResumo(report.Value, projetos.Value),
		Projetos:     projetos.Value,
		Unauthorized: report.Unauthorized || projetos.Unauthorized,
	}
}

// Catalog fetches secretarias and projetos concurrently, for pages that
// need both lists.
func (l *Loader) Catalog(ctx context.Context, s *authdomain.Session) (Result[[]domain.Secretaria], Result[[]domain.Projeto]) {
	var (
		g           errgroup.Group
		secretarias Result[[]domain.Secretaria]
		projetos    Result[[]domain.Projeto]
	)
	g.Go(func() error {
		secretarias = l.Secretarias(ctx, s)
		return nil
	})
	g.Go(func() error {
		projetos = l.Projetos(ctx, s)
		return nil
	})
	_ = g.Wait()
	return secretarias, projetos
}

func load[T any](
	ctx context.Context,
	state *ViewState,
	s *authdomain.Session,
	resource string,
	empty T,
	fetch func(context.Context, string) (T, error),
) Result[T] {
	logger := logging.FromContext(ctx)
	start := time.Now()

	value, err := fetch(ctx, s.Token)
	if err == nil {
		state.put(s.ID, resource, value)
		return Result[T]{Value: value, Fresh: true}
	}

	res := Result[T]{Value: empty}
	if prev, ok := state.get(s.ID, resource); ok {
		if v, ok := prev.(T); ok {
			res.Value = v
		}
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		res.Unauthorized = true
		logger.Info("remote api rejected session token", zap.String("resource", resource))
		return res
	}
	logger.Warn("page fetch failed, serving previous data",
		zap.String("resource", resource),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))
	return res
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	authdomain "github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response ends up in a StatusError.
const maxErrorBody = 512

// Client talks to the remote API that owns secretarias and projetos.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. Every call is bounded by timeout
// in addition to the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Authenticate exchanges credentials for a bearer token and profile.
func (c *Client) Authenticate(ctx context.Context, creds authdomain.Credentials) (*authdomain.LoginResult, error) {
	var res authdomain.LoginResult
	err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", loginRequest{Email: creds.Email, Senha: creds.Senha}, &res)
	if err != nil {
		var se *domain.StatusError
		if errors.Is(err, domain.ErrUnauthorized) || (errors.As(err, &se) && se.Code == http.StatusBadRequest) {
			return nil, authdomain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &res, nil
}

// FetchSecretarias lists every secretaria visible to token.
func (c *Client) FetchSecretarias(ctx context.Context, token string) ([]domain.Secretaria, error) {
	var body struct {
		Secretarias []domain.Secretaria `json:"secretarias"`
	}
	if err := c.do(ctx, "fetch_secretarias", http.MethodGet, "/api/secretarias", token, nil, &body); err != nil {
		return nil, err
	}
	if body.Secretarias == nil {
		body.Secretarias = []domain.Secretaria{}
	}
	return body.Secretarias, nil
}

// FetchProjetos lists every projeto visible to token.
func (c *Client) FetchProjetos(ctx context.Context, token string) ([]domain.Projeto, error) {
	var body struct {
		Projetos []domain.Projeto `json:"projetos"`
	}
	if err := c.do(ctx, "fetch_projetos", http.MethodGet, "/api/projetos", token, nil, &body); err != nil {
		return nil, err
	}
	if body.Projetos == nil {
		body.Projetos = []domain.Projeto{}
	}
	return body.Projetos, nil
}

// FetchDashboard returns the consolidated report. A response without a
// dashboard object is a decode error.
func (c *Client) FetchDashboard(ctx context.Context, token string) (*domain.Dashboard, error) {
	var body struct {
		Dashboard *domain.Dashboard `json:"dashboard"`
	}
	if err := c.do(ctx, "fetch_dashboard", http.MethodGet, "/api/relatorios/dashboard-geral", token, nil, &body); err != nil {
		return nil, err
	}
	if body.Dashboard == nil {
		return nil, fmt.Errorf("%w: missing dashboard", domain.ErrDecode)
	}
	return body.Dashboard, nil
}

func (c *Client) CreateSecretaria(ctx context.Context, token string, in domain.SecretariaInput) error {
	return c.do(ctx, "create_secretaria", http.MethodPost, "/api/secretarias", token, in, nil)
}

func (c *Client) UpdateSecretaria(ctx context.Context, token string, id int64, in domain.SecretariaInput) error {
	return c.do(ctx, "update_secretaria", http.MethodPut, "/api/secretarias/"+strconv.FormatInt(id, 10), token, in, nil)
}

func (c *Client) CreateProjeto(ctx context.Context, token string, in domain.ProjetoInput) error {
	return c.do(ctx, "create_projeto", http.MethodPost, "/api/projetos", token, in, nil)
}

func (c *Client) UpdateProjeto(ctx context.Context, token string, id int64, in domain.ProjetoInput) error {
	return c.do(ctx, "update_projeto", http.MethodPut, "/api/projetos/"+strconv.FormatInt(id, 10), token, in, nil)
}

// do performs one JSON call. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	logger := logging.FromContext(ctx).With(zap.String("op", op), zap.String("method", method), zap.String("path", path))
	start := time.Now()

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Warn("upstream request failed", zap.Duration("duration", duration), zap.Error(err))
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("upstream call", zap.Int("status", resp.StatusCode), zap.Duration("duration", duration))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode >= 400:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Warn("upstream returned error status", zap.Int("status", resp.StatusCode))
		return &domain.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn("decode upstream response", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	authdomain "github.com/gestao-municipal/painel/internal/auth/domain"
	"github.com/gestao-municipal/painel/internal/logging"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"go.uber.org/zap"
)

// Writer is the write side of the remote API.
type Writer interface {
	CreateSecretaria(ctx context.Context, token string, in domain.SecretariaInput) error
	UpdateSecretaria(ctx context.Context, token string, id int64, in domain.SecretariaInput) error
	CreateProjeto(ctx context.Context, token string, in domain.ProjetoInput) error
	UpdateProjeto(ctx context.Context, token string, id int64, in domain.ProjetoInput) error
}

// Editor submits forms to the remote API. An id of 0 creates, anything
// else updates.
type Editor struct {
	writer Writer
}

func NewEditor(w Writer) *Editor {
	return &Editor{writer: w}
}

func (e *Editor) SaveSecretaria(ctx context.Context, s *authdomain.Session, id int64, in domain.SecretariaInput) error {
	var err error
	if id == 0 {
		err = e.writer.CreateSecretaria(ctx, s.Token, in)
	} else {
		err = e.writer.UpdateSecretaria(ctx, s.Token, id, in)
	}
	return e.result(ctx, "secretaria", id, err)
}

func (e *Editor) SaveProjeto(ctx context.Context, s *authdomain.Session, id int64, in domain.ProjetoInput) error {
	in.Progresso = domain.ClampProgress(in.Progresso)

	var err error
	if id == 0 {
		err = e.writer.CreateProjeto(ctx, s.Token, in)
	} else {
		err = e.writer.UpdateProjeto(ctx, s.Token, id, in)
	}
	return e.result(ctx, "projeto", id, err)
}

func (e *Editor) result(ctx context.Context, kind string, id int64, err error) error {
	logger := logging.FromContext(ctx).With(zap.String("kind", kind), zap.Int64("id", id))
	if err != nil {
		logger.Warn("save failed", zap.Error(err))
		return fmt.Errorf("save %s: %w", kind, err)
	}
	logger.Info("saved")
	return nil
}

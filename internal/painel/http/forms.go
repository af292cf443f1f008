package http

import (
	"strings"

	"github.com/gestao-municipal/painel/internal/painel/domain"
)

type SecretariaForm struct {
	Nome        string `form:"nome" binding:"required"`
	Responsavel string `form:"responsavel" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Telefone    string `form:"telefone" binding:"required"`
	Contato     string `form:"contato"`
	Ativa       bool   `form:"ativa"`
}

func (f SecretariaForm) Input() domain.SecretariaInput {
	return domain.SecretariaInput{
		Nome:        strings.TrimSpace(f.Nome),
		Responsavel: strings.TrimSpace(f.Responsavel),
		Contato:     strings.TrimSpace(f.Contato),
		Email:       strings.TrimSpace(f.Email),
		Telefone:    strings.TrimSpace(f.Telefone),
		Ativa:       f.Ativa,
	}
}

func secretariaFormFrom(s domain.Secretaria) SecretariaForm {
	return SecretariaForm{
		Nome:        s.Nome,
		Responsavel: s.Responsavel,
		Email:       s.Email,
		Telefone:    s.Telefone,
		Contato:     s.Contato,
		Ativa:       s.Ativa,
	}
}

type ProjetoForm struct {
	Titulo              string  `form:"titulo" binding:"required"`
	Descricao           string  `form:"descricao" binding:"required"`
	SecretariaID        int64   `form:"secretaria_id"`
	Status              string  `form:"status" binding:"required,oneof=planejamento execucao concluido atrasado"`
	Progresso           int     `form:"progresso" binding:"min=0,max=100"`
	DataInicio          string  `form:"data_inicio"`
	DataPrevisaoTermino string  `form:"data_previsao_termino"`
	RecursosAplicados   float64 `form:"recursos_aplicados" binding:"min=0"`
	RecursosPendentes   float64 `form:"recursos_pendentes" binding:"min=0"`
	Observacoes         string  `form:"observacoes"`
}

func (f ProjetoForm) Input() domain.ProjetoInput {
	return domain.ProjetoInput{
		SecretariaID:        f.SecretariaID,
		Titulo:              strings.TrimSpace(f.Titulo),
		Descricao:           strings.TrimSpace(f.Descricao),
		Status:              f.Status,
		Progresso:           f.Progresso,
		DataInicio:          f.DataInicio,
		DataPrevisaoTermino: f.DataPrevisaoTermino,
		RecursosAplicados:   f.RecursosAplicados,
		RecursosPendentes:   f.RecursosPendentes,
		Observacoes:         strings.TrimSpace(f.Observacoes),
	}
}

func projetoFormFrom(p domain.Projeto) ProjetoForm {
	return ProjetoForm{
		Titulo:              p.Titulo,
		Descricao:           p.Descricao,
		SecretariaID:        p.SecretariaID,
		Status:              p.Status,
		Progresso:           domain.ProgressPercent(p.Progresso),
		DataInicio:          domain.InputDate(p.DataInicio),
		DataPrevisaoTermino: domain.InputDate(p.DataPrevisaoTermino),
		RecursosAplicados:   p.RecursosAplicados,
		RecursosPendentes:   p.RecursosPendentes,
		Observacoes:         p.Observacoes,
	}
}

// formStatusOptions are the choices of the projeto form, without "todos".
func formStatusOptions() []domain.StatusOption {
	all := domain.StatusOptions()
	out := make([]domain.StatusOption, 0, len(all))
	for _, o := range all {
		if o.Value != domain.StatusTodos {
			out = append(out, o)
		}
	}
	return out
}

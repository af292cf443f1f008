package domain

// Project status values as sent by the remote API.
const (
	StatusPlanejamento = "planejamento"
	StatusExecucao     = "execucao"
	StatusConcluido    = "concluido"
	StatusAtrasado     = "atrasado"

	// StatusTodos disables the status filter.
	StatusTodos = "todos"
)

// Secretaria is a municipal department. The remote API owns it.
type Secretaria struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	Responsavel string `json:"responsavel"`
	Contato     string `json:"contato"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Ativa       bool   `json:"ativa"`
}

// SecretariaInput is the body of create/update calls.
type SecretariaInput struct {
	Nome        string `json:"nome"`
	Responsavel string `json:"responsavel"`
	Contato     string `json:"contato"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Ativa       bool   `json:"ativa"`
}

type Projeto struct {
	ID                  int64   `json:"id"`
	SecretariaID        int64   `json:"secretaria_id"`
	Titulo              string  `json:"titulo"`
	Descricao           string  `json:"descricao"`
	Status              string  `json:"status"`
	Progresso           float64 `json:"progresso"`
	DataInicio          string  `json:"data_inicio"`
	DataPrevisaoTermino string  `json:"data_previsao_termino"`
	RecursosAplicados   float64 `json:"recursos_aplicados"`
	RecursosPendentes   float64 `json:"recursos_pendentes"`
	Observacoes         string  `json:"observacoes"`
}

type ProjetoInput struct {
	SecretariaID        int64   `json:"secretaria_id,omitempty"`
	Titulo              string  `json:"titulo"`
	Descricao           string  `json:"descricao"`
	Status              string  `json:"status"`
	Progresso           int     `json:"progresso"`
	DataInicio          string  `json:"data_inicio,omitempty"`
	DataPrevisaoTermino string  `json:"data_previsao_termino,omitempty"`
	RecursosAplicados   float64 `json:"recursos_aplicados"`
	RecursosPendentes   float64 `json:"recursos_pendentes"`
	Observacoes         string  `json:"observacoes,omitempty"`
}

// Dashboard is the payload of /api/relatorios/dashboard-geral.
type Dashboard struct {
	EstatisticasGerais    Estatisticas      `json:"estatisticas_gerais"`
	ProjetosPorStatus     []StatusTotal     `json:"projetos_por_status"`
	ProjetosPorSecretaria []SecretariaTotal `json:"projetos_por_secretaria"`
	Alertas               []Alerta          `json:"alertas"`
}

type Estatisticas struct {
	TotalSecretarias   int     `json:"total_secretarias"`
	TotalProjetos      int     `json:"total_projetos"`
	ProjetosEmExecucao int     `json:"projetos_em_execucao"`
	ProjetosConcluidos int     `json:"projetos_concluidos"`
	ProjetosAtrasados  int     `json:"projetos_atrasados"`
	TaxaConclusao      float64 `json:"taxa_conclusao"`
}

type StatusTotal struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type SecretariaTotal struct {
	Secretaria string `json:"secretaria"`
	Total      int    `json:"total"`
}

type Alerta struct {
	Tipo     string   `json:"tipo"`
	Mensagem string   `json:"mensagem"`
	Valor    *float64 `json:"valor,omitempty"`
}

package domain

import "strings"

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterSecretarias keeps the entries whose nome or responsavel contains
// term as typed, ignoring case. Only an empty term keeps everything.
func FilterSecretarias(list []Secretaria, term string) []Secretaria {
	out := make([]Secretaria, 0, len(list))
	for _, s := range list {
		if term == "" || containsFold(s.Nome, term) || containsFold(s.Responsavel, term) {
			out = append(out, s)
		}
	}
	return out
}

// FilterProjetos matches term against titulo or descricao and status
// exactly. StatusTodos or an empty status matches every status.
func FilterProjetos(list []Projeto, term, status string) []Projeto {
	out := make([]Projeto, 0, len(list))
	for _, p := range list {
		matchesSearch := term == "" || containsFold(p.Titulo, term) || containsFold(p.Descricao, term)
		matchesStatus := status == "" || status == StatusTodos || p.Status == status
		if matchesSearch && matchesStatus {
			out = append(out, p)
		}
	}
	return out
}

// ProjetosDaSecretaria returns the projetos owned by secretariaID.
func ProjetosDaSecretaria(list []Projeto, secretariaID int64) []Projeto {
	out := make([]Projeto, 0)
	for _, p := range list {
		if p.SecretariaID == secretariaID {
			out = append(out, p)
		}
	}
	return out
}

func FindSecretaria(list []Secretaria, id int64) (Secretaria, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Secretaria{}, false
}

func FindProjeto(list []Projeto, id int64) (Projeto, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return Projeto{}, false
}

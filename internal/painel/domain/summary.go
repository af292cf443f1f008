package domain

import "math"

// CountByStatus counts projetos per status.
func CountByStatus(list []Projeto) map[string]int {
	counts := make(map[string]int, len(statusOrder))
	for _, p := range list {
		counts[p.Status]++
	}
	return counts
}

func CountAtivas(list []Secretaria) int {
	n := 0
	for _, s := range list {
		if s.Ativa {
			n++
		}
	}
	return n
}

// MediaProjetos is the mean number of projetos per secretaria, one decimal.
func MediaProjetos(secretarias []Secretaria, projetos []Projeto) float64 {
	if len(secretarias) == 0 {
		return 0
	}
	return math.Round(float64(len(projetos))/float64(len(secretarias))*10) / 10
}

// Resumo is what the dashboard cards show.
type Resumo struct {
	TotalSecretarias   int
	ProjetosEmExecucao int
	ProjetosConcluidos int
	ProjetosAtrasados  int
	TaxaConclusao      float64
	PorStatus          []StatusTotal
	PorSecretaria      []SecretariaTotal
	Alertas            []Alerta
	// Derivado is set when the numbers come from the projetos list because
	// the dashboard report was unavailable.
	Derivado bool
}

// BuildResumo prefers the remote dashboard report and falls back to
// counting projetos locally.
func BuildResumo(d *Dashboard, projetos []Projeto) Resumo {
	if d != nil {
		return Resumo{
			TotalSecretarias:   d.EstatisticasGerais.TotalSecretarias,
			ProjetosEmExecucao: d.EstatisticasGerais.ProjetosEmExecucao,
			ProjetosConcluidos: d.EstatisticasGerais.ProjetosConcluidos,
			ProjetosAtrasados:  d.EstatisticasGerais.ProjetosAtrasados,
			TaxaConclusao:      d.EstatisticasGerais.TaxaConclusao,
			PorStatus:          d.ProjetosPorStatus,
			PorSecretaria:      d.ProjetosPorSecretaria,
			Alertas:            d.Alertas,
		}
	}

	counts := CountByStatus(projetos)
	secretarias := make(map[int64]struct{})
	for _, p := range projetos {
		secretarias[p.SecretariaID] = struct{}{}
	}

	r := Resumo{
		TotalSecretarias:   len(secretarias),
		ProjetosEmExecucao: counts[StatusExecucao],
		ProjetosConcluidos: counts[StatusConcluido],
		ProjetosAtrasados:  counts[StatusAtrasado],
		Derivado:           true,
	}
	if len(projetos) > 0 {
		r.TaxaConclusao = math.Round(float64(counts[StatusConcluido])/float64(len(projetos))*1000) / 10
	}
	for _, s := range statusOrder {
		if counts[s] > 0 {
			r.PorStatus = append(r.PorStatus, StatusTotal{Status: s, Total: counts[s]})
		}
	}
	return r
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label   string
	Total   int
	Percent int
}

// StatusBars scales status totals against the largest one.
func StatusBars(totals []StatusTotal) []Bar {
	max := 0
	for _, t := range totals {
		if t.Total > max {
			max = t.Total
		}
	}
	bars := make([]Bar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, Bar{Label: StatusLabel(t.Status), Total: t.Total, Percent: percentOf(t.Total, max)})
	}
	return bars
}

func SecretariaBars(totals []SecretariaTotal) []Bar {
	max := 0
	for _, t := range totals {
		if t.Total > max {
			max = t.Total
		}
	}
	bars := make([]Bar, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, Bar{Label: t.Secretaria, Total: t.Total, Percent: percentOf(t.Total, max)})
	}
	return bars
}

func percentOf(v, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(v) * 100 / float64(max)))
}

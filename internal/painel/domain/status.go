package domain

// StatusOption is one entry of the status select.
type StatusOption struct {
	Value string
	Label string
}

var statusOrder = []string{StatusPlanejamento, StatusExecucao, StatusConcluido, StatusAtrasado}

// StatusOptions lists the filter choices, "todos" first.
func StatusOptions() []StatusOption {
	opts := []StatusOption{{Value: StatusTodos, Label: "Todos os Status"}}
	for _, s := range statusOrder {
		opts = append(opts, StatusOption{Value: s, Label: StatusLabel(s)})
	}
	return opts
}

func StatusLabel(status string) string {
	switch status {
	case StatusConcluido:
		return "Concluído"
	case StatusExecucao:
		return "Em Execução"
	case StatusAtrasado:
		return "Atrasado"
	case StatusPlanejamento:
		return "Planejamento"
	default:
		return status
	}
}

// StatusClass is the css modifier used by the status badge.
func StatusClass(status string) string {
	switch status {
	case StatusConcluido:
		return "verde"
	case StatusExecucao:
		return "azul"
	case StatusAtrasado:
		return "vermelho"
	case StatusPlanejamento:
		return "amarelo"
	default:
		return "cinza"
	}
}

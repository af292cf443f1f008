package http

import (
	"net/http"
	"strconv"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"github.com/gin-gonic/gin"
)

type DashboardPage struct {
	Resumo         domain.Resumo
	StatusBars     []domain.Bar
	SecretariaBars []domain.Bar
}

type SecretariasPage struct {
	Items     []domain.Secretaria
	Query     string
	Searching bool
	Total     int
	Ativas    int
	Media     float64
}

type ProjetosPage struct {
	Items      []domain.Projeto
	Secretaria *domain.Secretaria
	Action     string
	Query      string
	Status     string
	Filtering  bool
	Options    []domain.StatusOption
	Counts     map[string]int
	Total      int
}

type SecretariaFormPage struct {
	ID      int64
	Form    SecretariaForm
	Errors  map[string]string
	Message string
}

type ProjetoFormPage struct {
	ID          int64
	Form        ProjetoForm
	Errors      map[string]string
	Message     string
	Options     []domain.StatusOption
	Secretarias []domain.Secretaria
}

func (h *Handler) dashboard(c *gin.Context) {
	data := h.loader.DashboardView(c.Request.Context(), auth.SessionFrom(c))
	if data.Unauthorized {
		h.expirePage(c)
		return
	}

	h.render.HTML(c, http.StatusOK, "dashboard.html", "dashboard", "Dashboard", DashboardPage{
		Resumo:         data.Resumo,
		StatusBars:     domain.StatusBars(data.Resumo.PorStatus),
		SecretariaBars: domain.SecretariaBars(data.Resumo.PorSecretaria),
	})
}

func (h *Handler) listSecretarias(c *gin.Context) {
	secretarias, projetos := h.loader.Catalog(c.Request.Context(), auth.SessionFrom(c))
	if secretarias.Unauthorized || projetos.Unauthorized {
		h.expirePage(c)
		return
	}

	q := c.Query("q")
	h.render.HTML(c, http.StatusOK, "secretarias.html", "secretarias", "Secretarias", SecretariasPage{
		Items:     domain.FilterSecretarias(secretarias.Value, q),
		Query:     q,
		Searching: q != "",
		Total:     len(secretarias.Value),
		Ativas:    domain.CountAtivas(secretarias.Value),
		Media:     domain.MediaProjetos(secretarias.Value, projetos.Value),
	})
}

func (h *Handler) listProjetos(c *gin.Context) {
	res := h.loader.Projetos(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expirePage(c)
		return
	}
	h.renderProjetos(c, res.Value, nil, "/projetos")
}

func (h *Handler) projetosDaSecretaria(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/secretarias")
		return
	}

	secretarias, projetos := h.loader.Catalog(c.Request.Context(), auth.SessionFrom(c))
	if secretarias.Unauthorized || projetos.Unauthorized {
		h.expirePage(c)
		return
	}

	sec, found := domain.FindSecretaria(secretarias.Value, id)
	if !found {
		c.Redirect(http.StatusFound, "/secretarias")
		return
	}
	h.renderProjetos(c, domain.ProjetosDaSecretaria(projetos.Value, id), &sec, "/secretarias/"+strconv.FormatInt(id, 10)+"/projetos")
}

func (h *Handler) renderProjetos(c *gin.Context, scope []domain.Projeto, sec *domain.Secretaria, action string) {
	q := c.Query("q")
	status := c.DefaultQuery("status", domain.StatusTodos)

	title := "Projetos"
	if sec != nil {
		title = "Projetos · " + sec.Nome
	}
	h.render.HTML(c, http.StatusOK, "projetos.html", "projetos", title, ProjetosPage{
		Items:      domain.FilterProjetos(scope, q, status),
		Secretaria: sec,
		Action:     action,
		Query:      q,
		Status:     status,
		Filtering:  q != "" || (status != domain.StatusTodos && status != ""),
		Options:    domain.StatusOptions(),
		Counts:     domain.CountByStatus(scope),
		Total:      len(scope),
	})
}

func paramID(c *gin.Context) (int64, bool) {
	return parseID(c.Param("id"))
}

func parseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

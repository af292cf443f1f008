package http

import (
	"net/http"
	"strings"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) apiDashboard(c *gin.Context) {
	data := h.loader.DashboardView(c.Request.Context(), auth.SessionFrom(c))
	if data.Unauthorized {
		h.expireAPI(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "resumo": resumoJSON(data.Resumo)})
}

func (h *Handler) apiSecretarias(c *gin.Context) {
	res := h.loader.Secretarias(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expireAPI(c)
		return
	}
	items := domain.FilterSecretarias(res.Value, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "fresh": res.Fresh, "total": len(items), "secretarias": items})
}

func (h *Handler) apiProjetos(c *gin.Context) {
	res := h.loader.Projetos(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expireAPI(c)
		return
	}

	scope := res.Value
	if sid, ok := parseID(c.Query("secretaria_id")); ok {
		scope = domain.ProjetosDaSecretaria(scope, sid)
	}
	items := domain.FilterProjetos(scope, c.Query("q"), strings.TrimSpace(c.Query("status")))
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"fresh":      res.Fresh,
		"total":      len(items),
		"por_status": domain.CountByStatus(scope),
		"projetos":   items,
	})
}

func resumoJSON(r domain.Resumo) gin.H {
	porStatus := r.PorStatus
	if porStatus == nil {
		porStatus = []domain.StatusTotal{}
	}
	porSecretaria := r.PorSecretaria
	if porSecretaria == nil {
		porSecretaria = []domain.SecretariaTotal{}
	}
	alertas := r.Alertas
	if alertas == nil {
		alertas = []domain.Alerta{}
	}
	return gin.H{
		"total_secretarias":       r.TotalSecretarias,
		"projetos_em_execucao":    r.ProjetosEmExecucao,
		"projetos_concluidos":     r.ProjetosConcluidos,
		"projetos_atrasados":      r.ProjetosAtrasados,
		"taxa_conclusao":          r.TaxaConclusao,
		"projetos_por_status":     porStatus,
		"projetos_por_secretaria": porSecretaria,
		"alertas":                 alertas,
		"derivado":                r.Derivado,
	}
}

package http

import "github.com/gin-gonic/gin"

// RegisterPages mounts the HTML pages on a group already behind the gate.
func (h *Handler) RegisterPages(rg *gin.RouterGroup) {
	rg.GET("/", h.dashboard)

	rg.GET("/secretarias", h.listSecretarias)
	rg.GET("/secretarias/nova", h.newSecretaria)
	rg.POST("/secretarias", h.createSecretaria)
	rg.GET("/secretarias/:id/editar", h.editSecretaria)
	rg.POST("/secretarias/:id", h.updateSecretaria)
	rg.GET("/secretarias/:id/projetos", h.projetosDaSecretaria)

	rg.GET("/projetos", h.listProjetos)
	rg.GET("/projetos/novo", h.newProjeto)
	rg.POST("/projetos", h.createProjeto)
	rg.GET("/projetos/:id/editar", h.editProjeto)
	rg.POST("/projetos/:id", h.updateProjeto)

	rg.GET("/recursos", h.requireMenu("recursos"), h.render.Placeholder("recursos", "Recursos"))
	rg.GET("/relatorios", h.render.Placeholder("relatorios", "Relatórios"))
}

// RegisterAPI mounts the JSON endpoints on a group behind the API gate.
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.apiDashboard)
	rg.GET("/secretarias", h.apiSecretarias)
	rg.GET("/projetos", h.apiProjetos)
}

package http

import (
	"errors"
	"net/http"

	"github.com/gestao-municipal/painel/internal/auth"
	"github.com/gestao-municipal/painel/internal/painel/domain"
	"github.com/gestao-municipal/painel/internal/web"
	"github.com/gin-gonic/gin"
)

const msgSaveFailed = "Não foi possível salvar. Tente novamente."

func (h *Handler) newSecretaria(c *gin.Context) {
	h.secretariaForm(c, http.StatusOK, SecretariaFormPage{Form: SecretariaForm{Ativa: true}})
}

func (h *Handler) editSecretaria(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/secretarias")
		return
	}

	res := h.loader.Secretarias(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expirePage(c)
		return
	}
	sec, found := domain.FindSecretaria(res.Value, id)
	if !found {
		c.Redirect(http.StatusFound, "/secretarias")
		return
	}
	h.secretariaForm(c, http.StatusOK, SecretariaFormPage{ID: id, Form: secretariaFormFrom(sec)})
}

func (h *Handler) createSecretaria(c *gin.Context) {
	h.saveSecretaria(c, 0)
}

func (h *Handler) updateSecretaria(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/secretarias")
		return
	}
	h.saveSecretaria(c, id)
}

func (h *Handler) saveSecretaria(c *gin.Context, id int64) {
	var form SecretariaForm
	if err := c.ShouldBind(&form); err != nil {
		page := SecretariaFormPage{ID: id, Form: form, Message: web.MsgInvalidForm}
		page.Errors, _ = web.FieldErrors(form, err)
		h.secretariaForm(c, http.StatusUnprocessableEntity, page)
		return
	}

	err := h.editor.SaveSecretaria(c.Request.Context(), auth.SessionFrom(c), id, form.Input())
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.expirePage(c)
	case err != nil:
		h.secretariaForm(c, http.StatusBadGateway, SecretariaFormPage{ID: id, Form: form, Message: msgSaveFailed})
	default:
		c.Redirect(http.StatusSeeOther, "/secretarias")
	}
}

func (h *Handler) secretariaForm(c *gin.Context, status int, page SecretariaFormPage) {
	title := "Nova Secretaria"
	if page.ID != 0 {
		title = "Editar Secretaria"
	}
	h.render.HTML(c, status, "secretaria_form.html", "secretarias", title, page)
}

func (h *Handler) newProjeto(c *gin.Context) {
	form := ProjetoForm{Status: domain.StatusPlanejamento}
	if sid, ok := parseID(c.Query("secretaria_id")); ok {
		form.SecretariaID = sid
	}
	h.projetoForm(c, http.StatusOK, ProjetoFormPage{Form: form})
}

func (h *Handler) editProjeto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/projetos")
		return
	}

	res := h.loader.Projetos(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expirePage(c)
		return
	}
	p, found := domain.FindProjeto(res.Value, id)
	if !found {
		c.Redirect(http.StatusFound, "/projetos")
		return
	}
	h.projetoForm(c, http.StatusOK, ProjetoFormPage{ID: id, Form: projetoFormFrom(p)})
}

func (h *Handler) createProjeto(c *gin.Context) {
	h.saveProjeto(c, 0)
}

func (h *Handler) updateProjeto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/projetos")
		return
	}
	h.saveProjeto(c, id)
}

func (h *Handler) saveProjeto(c *gin.Context, id int64) {
	var form ProjetoForm
	if err := c.ShouldBind(&form); err != nil {
		page := ProjetoFormPage{ID: id, Form: form, Message: web.MsgInvalidForm}
		page.Errors, _ = web.FieldErrors(form, err)
		h.projetoForm(c, http.StatusUnprocessableEntity, page)
		return
	}

	err := h.editor.SaveProjeto(c.Request.Context(), auth.SessionFrom(c), id, form.Input())
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.expirePage(c)
	case err != nil:
		h.projetoForm(c, http.StatusBadGateway, ProjetoFormPage{ID: id, Form: form, Message: msgSaveFailed})
	default:
		c.Redirect(http.StatusSeeOther, "/projetos")
	}
}

// projetoForm fills the secretaria select before rendering. A failed fetch
// leaves the select with its previous or empty list.
func (h *Handler) projetoForm(c *gin.Context, status int, page ProjetoFormPage) {
	res := h.loader.Secretarias(c.Request.Context(), auth.SessionFrom(c))
	if res.Unauthorized {
		h.expirePage(c)
		return
	}
	page.Secretarias = res.Value
	page.Options = formStatusOptions()

	title := "Novo Projeto"
	if page.ID != 0 {
		title = "Editar Projeto"
	}
	h.render.HTML(c, status, "projeto_form.html", "projetos", title, page)
}

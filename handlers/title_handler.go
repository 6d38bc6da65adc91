package handlers

import (
	"net/http"

	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService services.TitleService
	Helper       *helper.HTTPHelper
}

func NewTitleHandler(titleService services.TitleService, h *helper.HTTPHelper) *TitleHandler {
	return &TitleHandler{titleService: titleService, Helper: h}
}

func (h *TitleHandler) GetTitles(c *gin.Context) {
	page, err := h.Helper.PageNumber(c)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	var params models.TitleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	params.Page = page

	offset, limit := h.Helper.Window(page)
	titles, total, err := h.titleService.List(params, offset, limit)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	sendPage(c, h.Helper, page, total, titles)
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.Get(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	var req models.TitleRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	title, err := h.titleService.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

func (h *TitleHandler) ReplaceTitle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}
	var req models.TitleRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	title, err := h.titleService.Replace(id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}
	var req models.UpdateTitleRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	title, err := h.titleService.Update(id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

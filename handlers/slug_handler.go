package handlers

import (
	"net/http"

	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

// SlugHandler serves categories and genres. Items are addressed by slug and
// cannot be retrieved or replaced one by one.
type SlugHandler[T any] struct {
	service services.SlugService[T]
	Helper  *helper.HTTPHelper
}

func NewSlugHandler[T any](service services.SlugService[T], h *helper.HTTPHelper) *SlugHandler[T] {
	return &SlugHandler[T]{service: service, Helper: h}
}

func (h *SlugHandler[T]) List(c *gin.Context) {
	params, ok := listParams(c, h.Helper)
	if !ok {
		return
	}

	offset, limit := h.Helper.Window(params.Page)
	items, total, err := h.service.List(params, offset, limit)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	sendPage(c, h.Helper, params.Page, total, items)
}

func (h *SlugHandler[T]) Create(c *gin.Context) {
	var req models.CreateSlugRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	item, err := h.service.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *SlugHandler[T]) Update(c *gin.Context) {
	var req models.UpdateSlugRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	item, err := h.service.Update(c.Param("slug"), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *SlugHandler[T]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("slug")); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

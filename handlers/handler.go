package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"yamdb-api/helper"
	"yamdb-api/models"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the body into req. An empty body decodes as
// {} so that required fields are reported per field.
func bindJSON(c *gin.Context, h *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		h.SendBindError(c, err)
		return false
	}
	if err := h.ValidateStruct(req); err != nil {
		h.SendError(c, err)
		return false
	}
	return true
}

// paramID parses a numeric path parameter; anything else is a missing object.
func paramID(c *gin.Context, h *helper.HTTPHelper, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.SendDetail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return uint(id), true
}

// sendPage writes a paginated list or the pagination error.
func sendPage(c *gin.Context, h *helper.HTTPHelper, page int, total int64, results interface{}) {
	paging, err := h.GeneratePaging(c, page, total, results)
	if err != nil {
		h.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, paging)
}

func listParams(c *gin.Context, h *helper.HTTPHelper) (models.ListParams, bool) {
	var params models.ListParams
	page, err := h.PageNumber(c)
	if err != nil {
		h.SendError(c, err)
		return params, false
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		h.SendDetail(c, http.StatusBadRequest, err.Error())
		return params, false
	}
	params.Page = page
	return params, true
}

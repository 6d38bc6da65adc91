package handlers

import (
	"net/http"

	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	response, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Token answers every rejected exchange with 404.
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	response, err := h.authService.TokenExchange(req)
	if err != nil {
		if h.Helper.GetStatusCode(err) == http.StatusInternalServerError {
			h.Helper.SendError(c, err)
			return
		}
		h.Helper.SendErrorWithStatus(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

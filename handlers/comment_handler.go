package handlers

import (
	"net/http"

	"yamdb-api/helper"
	"yamdb-api/middleware"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	policy         permissions.Policy
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, policy permissions.Policy, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, policy: policy, Helper: h}
}

func (h *CommentHandler) parents(c *gin.Context) (titleID, reviewID uint, ok bool) {
	if titleID, ok = paramID(c, h.Helper, "title_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = paramID(c, h.Helper, "review_id"); !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	titleID, reviewID, ok := h.parents(c)
	if !ok {
		return
	}
	page, err := h.Helper.PageNumber(c)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	offset, limit := h.Helper.Window(page)
	comments, total, err := h.commentService.List(titleID, reviewID, offset, limit)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	sendPage(c, h.Helper, page, total, comments)
}

func (h *CommentHandler) loadComment(c *gin.Context) (*models.Comment, bool) {
	titleID, reviewID, ok := h.parents(c)
	if !ok {
		return nil, false
	}
	id, ok := paramID(c, h.Helper, "comment_id")
	if !ok {
		return nil, false
	}

	comment, err := h.commentService.Get(titleID, reviewID, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return nil, false
	}
	if !middleware.CheckItem(c, h.Helper, h.policy, comment) {
		return nil, false
	}
	return comment, true
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	titleID, reviewID, ok := h.parents(c)
	if !ok {
		return
	}
	var req models.CommentRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}
	identity := middleware.IdentityFromContext(c)

	comment, err := h.commentService.Create(titleID, reviewID, identity.UserID, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

// UpdateComment serves both PUT and PATCH; text is the only writable field.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if c.Request.Method == http.MethodPut {
		var full models.CommentRequest
		if !bindJSON(c, h.Helper, &full) {
			return
		}
		req.Text = &full.Text
	} else if !bindJSON(c, h.Helper, &req) {
		return
	}

	comment, err := h.commentService.Update(comment, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(comment); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

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

type ReviewHandler struct {
	reviewService services.ReviewService
	policy        permissions.Policy
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService, policy permissions.Policy, h *helper.HTTPHelper) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, policy: policy, Helper: h}
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	titleID, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}
	page, err := h.Helper.PageNumber(c)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	offset, limit := h.Helper.Window(page)
	reviews, total, err := h.reviewService.List(titleID, offset, limit)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	sendPage(c, h.Helper, page, total, reviews)
}

// loadReview fetches the review from the path and applies the item policy.
func (h *ReviewHandler) loadReview(c *gin.Context) (*models.Review, bool) {
	titleID, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return nil, false
	}
	id, ok := paramID(c, h.Helper, "review_id")
	if !ok {
		return nil, false
	}

	review, err := h.reviewService.Get(titleID, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return nil, false
	}
	if !middleware.CheckItem(c, h.Helper, h.policy, review) {
		return nil, false
	}
	return review, true
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	titleID, ok := paramID(c, h.Helper, "title_id")
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}
	identity := middleware.IdentityFromContext(c)

	review, err := h.reviewService.Create(titleID, identity.UserID, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewReviewResponse(review))
}

func (h *ReviewHandler) ReplaceReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	review, err := h.reviewService.Replace(review, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}
	var req models.UpdateReviewRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	review, err := h.reviewService.Update(review, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(review); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

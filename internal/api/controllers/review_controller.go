package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type ReviewController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewController(reviewService services.ReviewServiceInterface) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// ListReviews godoc
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /reviews [get]
func (r *ReviewController) ListReviews(c *gin.Context) {
	reviews, err := r.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}

// GetReview godoc
// @Summary Get a review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /reviews/{id} [get]
func (r *ReviewController) GetReview(c *gin.Context) {
	review, err := r.reviewService.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, review, "Review fetched successfully")
}

// UpdateReview godoc
// @Summary Update a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body request_models.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reviews/{id} [put]
func (r *ReviewController) UpdateReview(c *gin.Context) {
	var req request_models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	review, err := r.reviewService.UpdateReview(c.Request.Context(), c.Param("id"), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, review, "Review updated successfully")
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags Reviews
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (r *ReviewController) DeleteReview(c *gin.Context) {
	if err := r.reviewService.DeleteReview(c.Request.Context(), c.Param("id"), callerOf(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

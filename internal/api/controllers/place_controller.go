package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type PlaceController struct {
	placeService  services.PlaceServiceInterface
	reviewService services.ReviewServiceInterface
}

func NewPlaceController(placeService services.PlaceServiceInterface, reviewService services.ReviewServiceInterface) *PlaceController {
	return &PlaceController{
		placeService:  placeService,
		reviewService: reviewService,
	}
}

// ListPlaces godoc
// @Summary List places
// @Tags Places
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /places [get]
func (p *PlaceController) ListPlaces(c *gin.Context) {
	places, err := p.placeService.ListPlaces(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

// GetPlace godoc
// @Summary Get a place
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/{id} [get]
func (p *PlaceController) GetPlace(c *gin.Context) {
	place, err := p.placeService.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}

// CreatePlace godoc
// @Summary Create a place
// @Description The authenticated user becomes the host.
// @Tags Places
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlaceRequest true "Place payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places [post]
func (p *PlaceController) CreatePlace(c *gin.Context) {
	var req request_models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	place, err := p.placeService.CreatePlace(c.Request.Context(), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, place, "Place created successfully")
}

// UpdatePlace godoc
// @Summary Update a place
// @Tags Places
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param request body request_models.UpdatePlaceRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places/{id} [put]
func (p *PlaceController) UpdatePlace(c *gin.Context) {
	var req request_models.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	place, err := p.placeService.UpdatePlace(c.Request.Context(), c.Param("id"), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place updated successfully")
}

// DeletePlace godoc
// @Summary Delete a place with its reviews and amenity links
// @Tags Places
// @Param id path string true "Place ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places/{id} [delete]
func (p *PlaceController) DeletePlace(c *gin.Context) {
	if err := p.placeService.DeletePlace(c.Request.Context(), c.Param("id"), callerOf(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// ListPlaceAmenities godoc
// @Summary List the amenities of a place
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/{id}/amenities [get]
func (p *PlaceController) ListPlaceAmenities(c *gin.Context) {
	amenities, err := p.placeService.ListAmenities(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, amenities, "Amenities fetched successfully")
}

// AddPlaceAmenity godoc
// @Summary Attach an amenity to a place
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Param amenity_id path string true "Amenity ID"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places/{id}/amenities/{amenity_id} [post]
func (p *PlaceController) AddPlaceAmenity(c *gin.Context) {
	amenity, err := p.placeService.AddAmenity(c.Request.Context(), c.Param("id"), c.Param("amenity_id"), callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, amenity, "Amenity added to place")
}

// RemovePlaceAmenity godoc
// @Summary Detach an amenity from a place
// @Tags Places
// @Param id path string true "Place ID"
// @Param amenity_id path string true "Amenity ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places/{id}/amenities/{amenity_id} [delete]
func (p *PlaceController) RemovePlaceAmenity(c *gin.Context) {
	if err := p.placeService.RemoveAmenity(c.Request.Context(), c.Param("id"), c.Param("amenity_id"), callerOf(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// ListPlaceReviews godoc
// @Summary List the reviews of a place
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /places/{id}/reviews [get]
func (p *PlaceController) ListPlaceReviews(c *gin.Context) {
	reviews, err := p.reviewService.ListByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}

// CreatePlaceReview godoc
// @Summary Review a place
// @Description The authenticated user is the author. Hosts cannot review their own place.
// @Tags Places
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param request body request_models.CreateReviewRequest true "Review payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /places/{id}/reviews [post]
func (p *PlaceController) CreatePlaceReview(c *gin.Context) {
	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	review, err := p.reviewService.CreateReview(c.Request.Context(), c.Param("id"), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, review, "Review created successfully")
}

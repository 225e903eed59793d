package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type AmenityController struct {
	amenityService services.AmenityServiceInterface
}

func NewAmenityController(amenityService services.AmenityServiceInterface) *AmenityController {
	return &AmenityController{
		amenityService: amenityService,
	}
}

// ListAmenities godoc
// @Summary List amenities
// @Tags Amenities
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /amenities [get]
func (a *AmenityController) ListAmenities(c *gin.Context) {
	amenities, err := a.amenityService.ListAmenities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, amenities, "Amenities fetched successfully")
}

// GetAmenity godoc
// @Summary Get an amenity
// @Tags Amenities
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /amenities/{id} [get]
func (a *AmenityController) GetAmenity(c *gin.Context) {
	amenity, err := a.amenityService.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, amenity, "Amenity fetched successfully")
}

// CreateAmenity godoc
// @Summary Create an amenity
// @Tags Amenities
// @Accept json
// @Produce json
// @Param request body request_models.CreateAmenityRequest true "Amenity payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /amenities [post]
func (a *AmenityController) CreateAmenity(c *gin.Context) {
	var req request_models.CreateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	amenity, err := a.amenityService.CreateAmenity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, amenity, "Amenity created successfully")
}

// UpdateAmenity godoc
// @Summary Rename an amenity
// @Tags Amenities
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param request body request_models.UpdateAmenityRequest true "New name"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /amenities/{id} [put]
func (a *AmenityController) UpdateAmenity(c *gin.Context) {
	var req request_models.UpdateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	amenity, err := a.amenityService.UpdateAmenity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, amenity, "Amenity updated successfully")
}

// DeleteAmenity godoc
// @Summary Delete an amenity and detach it from places
// @Tags Amenities
// @Param id path string true "Amenity ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /amenities/{id} [delete]
func (a *AmenityController) DeleteAmenity(c *gin.Context) {
	if err := a.amenityService.DeleteAmenity(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type CityController struct {
	cityService services.CityServiceInterface
}

func NewCityController(cityService services.CityServiceInterface) *CityController {
	return &CityController{
		cityService: cityService,
	}
}

// ListCities godoc
// @Summary List cities
// @Tags Cities
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /cities [get]
func (p *CityController) ListCities(c *gin.Context) {
	cities, err := p.cityService.ListCities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

// GetCity godoc
// @Summary Get a city
// @Tags Cities
// @Produce json
// @Param id path string true "City ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /cities/{id} [get]
func (p *CityController) GetCity(c *gin.Context) {
	city, err := p.cityService.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, city, "City fetched successfully")
}

// ListCityPlaces godoc
// @Summary List the places in a city
// @Tags Cities
// @Produce json
// @Param id path string true "City ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /cities/{id}/places [get]
func (p *CityController) ListCityPlaces(c *gin.Context) {
	places, err := p.cityService.ListPlaces(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

// CreateCity godoc
// @Summary Create a city
// @Tags Cities
// @Accept json
// @Produce json
// @Param request body request_models.CreateCityRequest true "City payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /cities [post]
func (p *CityController) CreateCity(c *gin.Context) {
	var req request_models.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	city, err := p.cityService.CreateCity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, city, "City created successfully")
}

// UpdateCity godoc
// @Summary Update a city
// @Tags Cities
// @Accept json
// @Produce json
// @Param id path string true "City ID"
// @Param request body request_models.UpdateCityRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /cities/{id} [put]
func (p *CityController) UpdateCity(c *gin.Context) {
	var req request_models.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	city, err := p.cityService.UpdateCity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, city, "City updated successfully")
}

// DeleteCity godoc
// @Summary Delete a city without places
// @Tags Cities
// @Param id path string true "City ID"
// @Success 204
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /cities/{id} [delete]
func (p *CityController) DeleteCity(c *gin.Context) {
	if err := p.cityService.DeleteCity(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

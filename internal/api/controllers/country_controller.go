package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/utils"
)

type CountryController struct {
	countryService services.CountryServiceInterface
}

func NewCountryController(countryService services.CountryServiceInterface) *CountryController {
	return &CountryController{
		countryService: countryService,
	}
}

// ListCountries godoc
// @Summary List countries
// @Tags Countries
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /countries [get]
func (p *CountryController) ListCountries(c *gin.Context) {
	countries, err := p.countryService.ListCountries(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, countries, "Countries fetched successfully")
}

// GetCountry godoc
// @Summary Get a country by ISO code
// @Tags Countries
// @Produce json
// @Param code path string true "ISO 3166-1 alpha-2 code"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /countries/{code} [get]
func (p *CountryController) GetCountry(c *gin.Context) {
	country, err := p.countryService.GetCountry(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, country, "Country fetched successfully")
}

// ListCountryCities godoc
// @Summary List the cities of a country
// @Tags Countries
// @Produce json
// @Param code path string true "ISO 3166-1 alpha-2 code"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /countries/{code}/cities [get]
func (p *CountryController) ListCountryCities(c *gin.Context) {
	cities, err := p.countryService.ListCities(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

// CreateCountry godoc
// @Summary Create a country
// @Tags Countries
// @Accept json
// @Produce json
// @Param request body request_models.CreateCountryRequest true "Country payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /countries [post]
func (p *CountryController) CreateCountry(c *gin.Context) {
	var req request_models.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	country, err := p.countryService.CreateCountry(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, country, "Country created successfully")
}

// UpdateCountry godoc
// @Summary Rename a country
// @Tags Countries
// @Accept json
// @Produce json
// @Param code path string true "ISO 3166-1 alpha-2 code"
// @Param request body request_models.UpdateCountryRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /countries/{code} [put]
func (p *CountryController) UpdateCountry(c *gin.Context) {
	var req request_models.UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	country, err := p.countryService.UpdateCountry(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, country, "Country updated successfully")
}

// DeleteCountry godoc
// @Summary Delete a country without cities
// @Tags Countries
// @Param code path string true "ISO 3166-1 alpha-2 code"
// @Success 204
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /countries/{code} [delete]
func (p *CountryController) DeleteCountry(c *gin.Context) {
	if err := p.countryService.DeleteCountry(c.Request.Context(), c.Param("code")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

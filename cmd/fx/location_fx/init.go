package location_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
)

var Module = fx.Provide(
	NewCountryService, NewCityService)

func NewCountryService(
	countryRepo repositories.Repository[db_models.Country],
	cityRepo repositories.Repository[db_models.City],
) services.CountryServiceInterface {
	return services.NewCountryService(countryRepo, cityRepo)
}

func NewCityService(
	cityRepo repositories.Repository[db_models.City],
	countryRepo repositories.Repository[db_models.Country],
	placeRepo repositories.Repository[db_models.Place],
) services.CityServiceInterface {
	return services.NewCityService(cityRepo, countryRepo, placeRepo)
}

package amenity_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
)

var Module = fx.Provide(
	provideAmenityService)

func provideAmenityService(
	amenityRepo repositories.Repository[db_models.Amenity],
	linkRepo repositories.Repository[db_models.PlaceAmenity],
) services.AmenityServiceInterface {
	return services.NewAmenityService(amenityRepo, linkRepo)
}

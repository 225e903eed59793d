package place_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
)

var Module = fx.Provide(
	providePlaceService)

func providePlaceService(
	placeRepo repositories.Repository[db_models.Place],
	userRepo repositories.Repository[db_models.User],
	cityRepo repositories.Repository[db_models.City],
	amenityRepo repositories.Repository[db_models.Amenity],
	linkRepo repositories.Repository[db_models.PlaceAmenity],
	reviewRepo repositories.Repository[db_models.Review],
) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, userRepo, cityRepo, amenityRepo, linkRepo, reviewRepo)
}

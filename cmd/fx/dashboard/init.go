package dashboard

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
)

var Module = fx.Provide(
	provideDashboardService,
)

func provideDashboardService(
	users repositories.Repository[db_models.User],
	countries repositories.Repository[db_models.Country],
	cities repositories.Repository[db_models.City],
	places repositories.Repository[db_models.Place],
	amenities repositories.Repository[db_models.Amenity],
	reviews repositories.Repository[db_models.Review],
) services.DashboardService {
	return services.NewDashboardService(users, countries, cities, places, amenities, reviews)
}

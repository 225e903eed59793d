package review_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
)

var Module = fx.Provide(
	provideReviewService,
)

func provideReviewService(
	reviewRepo repositories.Repository[db_models.Review],
	placeRepo repositories.Repository[db_models.Place],
	userRepo repositories.Repository[db_models.User],
) services.ReviewServiceInterface {
	return services.NewReviewService(reviewRepo, placeRepo, userRepo)
}

package user_fx

import (
	"go.uber.org/fx"

	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/services"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/utils"
)

var Module = fx.Provide(
	provideUserService)

func provideUserService(
	userRepo repositories.Repository[db_models.User],
	placeRepo repositories.Repository[db_models.Place],
	reviewRepo repositories.Repository[db_models.Review],
	tokens *utils.TokenManager,
	revoked mem.RevokedTokenStore,
) services.UserServiceInterface {
	return services.NewUserService(userRepo, placeRepo, reviewRepo, tokens, revoked)
}

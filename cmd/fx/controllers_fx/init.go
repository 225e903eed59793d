package controllers_fx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"hbnb/internal/api"
	"hbnb/internal/api/controllers"
	"hbnb/internal/config"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewCountryController),
	fx.Provide(controllers.NewCityController),
	fx.Provide(controllers.NewAmenityController),
	fx.Provide(controllers.NewPlaceController),
	fx.Provide(controllers.NewReviewController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(ProvideRouter))

type routerParams struct {
	fx.In

	Config    *config.Config
	Tokens    *utils.TokenManager
	Revoked   mem.RevokedTokenStore
	Users     *controllers.UserController
	Countries *controllers.CountryController
	Cities    *controllers.CityController
	Amenities *controllers.AmenityController
	Places    *controllers.PlaceController
	Reviews   *controllers.ReviewController
	Dashboard *controllers.DashboardController
}

func ProvideRouter(p routerParams) *gin.Engine {
	return api.NewRouter(p.Config, api.Handlers{
		Users:     p.Users,
		Countries: p.Countries,
		Cities:    p.Cities,
		Amenities: p.Amenities,
		Places:    p.Places,
		Reviews:   p.Reviews,
		Dashboard: p.Dashboard,
	}, p.Tokens, p.Revoked)
}

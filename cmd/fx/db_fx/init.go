package db_fx

import (
	"context"

	"go.uber.org/fx"

	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/internal/seed"
)

var Module = fx.Options(
	fx.Provide(
		provideBackend,
		provideUserRepo,
		provideCountryRepo,
		provideCityRepo,
		provideAmenityRepo,
		providePlaceRepo,
		providePlaceAmenityRepo,
		provideReviewRepo,
	),
	fx.Invoke(seedData),
)

func provideBackend(lc fx.Lifecycle, cfg *config.Config) (*repositories.Backend, error) {
	backend, err := repositories.NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
	return backend, nil
}

func provideUserRepo(b *repositories.Backend) (repositories.Repository[db_models.User], error) {
	return repositories.NewRepository[db_models.User](b)
}

func provideCountryRepo(b *repositories.Backend) (repositories.Repository[db_models.Country], error) {
	return repositories.NewRepository[db_models.Country](b)
}

func provideCityRepo(b *repositories.Backend) (repositories.Repository[db_models.City], error) {
	return repositories.NewRepository[db_models.City](b)
}

func provideAmenityRepo(b *repositories.Backend) (repositories.Repository[db_models.Amenity], error) {
	return repositories.NewRepository[db_models.Amenity](b)
}

func providePlaceRepo(b *repositories.Backend) (repositories.Repository[db_models.Place], error) {
	return repositories.NewRepository[db_models.Place](b)
}

func providePlaceAmenityRepo(b *repositories.Backend) (repositories.Repository[db_models.PlaceAmenity], error) {
	return repositories.NewRepository[db_models.PlaceAmenity](b)
}

func provideReviewRepo(b *repositories.Backend) (repositories.Repository[db_models.Review], error) {
	return repositories.NewRepository[db_models.Review](b)
}

func seedData(
	cfg *config.Config,
	countries repositories.Repository[db_models.Country],
	users repositories.Repository[db_models.User],
) error {
	return seed.Run(context.Background(), cfg, countries, users)
}

package services

import (
	"context"
	"fmt"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

type CityServiceInterface interface {
	ListCities(ctx context.Context) ([]response_models.CityResponse, error)
	GetCity(ctx context.Context, id string) (response_models.CityResponse, error)
	ListPlaces(ctx context.Context, id string) ([]response_models.PlaceResponse, error)
	CreateCity(ctx context.Context, request request_models.CreateCityRequest) (response_models.CityResponse, error)
	UpdateCity(ctx context.Context, id string, request request_models.UpdateCityRequest) (response_models.CityResponse, error)
	DeleteCity(ctx context.Context, id string) error
}

type CityService struct {
	cityRepo    repositories.Repository[db_models.City]
	countryRepo repositories.Repository[db_models.Country]
	placeRepo   repositories.Repository[db_models.Place]
}

func NewCityService(
	cityRepo repositories.Repository[db_models.City],
	countryRepo repositories.Repository[db_models.Country],
	placeRepo repositories.Repository[db_models.Place],
) CityServiceInterface {
	return &CityService{
		cityRepo:    cityRepo,
		countryRepo: countryRepo,
		placeRepo:   placeRepo,
	}
}

func (s *CityService) get(ctx context.Context, id string) (*db_models.City, error) {
	city, err := s.cityRepo.Get(ctx, id)
	if err != nil {
		return nil, databaseError(err, "get city")
	}
	if city == nil {
		return nil, utils.ErrCityNotFound
	}
	return city, nil
}

func (s *CityService) requireCountry(ctx context.Context, code string) (string, error) {
	country, err := findCountry(ctx, s.countryRepo, code)
	if err != nil {
		return "", err
	}
	if country == nil {
		return "", fmt.Errorf("%w: country %s", utils.ErrInvalidReference, normalizeCode(code))
	}
	return country.Code, nil
}

func (s *CityService) ListCities(ctx context.Context) ([]response_models.CityResponse, error) {
	cities, err := s.cityRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list cities")
	}
	return mapAll(cities, toCityResponse), nil
}

func (s *CityService) GetCity(ctx context.Context, id string) (response_models.CityResponse, error) {
	city, err := s.get(ctx, id)
	if err != nil {
		return response_models.CityResponse{}, err
	}
	return toCityResponse(city), nil
}

func (s *CityService) ListPlaces(ctx context.Context, id string) ([]response_models.PlaceResponse, error) {
	city, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	places, err := s.placeRepo.FindBy(ctx, db_models.PlaceFieldCityID, city.ID.String())
	if err != nil {
		return nil, databaseError(err, "list city places")
	}
	return mapAll(places, toPlaceResponse), nil
}

func (s *CityService) CreateCity(ctx context.Context, request request_models.CreateCityRequest) (response_models.CityResponse, error) {
	name, err := requiredText("name", request.Name)
	if err != nil {
		return response_models.CityResponse{}, err
	}
	code, err := s.requireCountry(ctx, request.CountryCode)
	if err != nil {
		return response_models.CityResponse{}, err
	}

	city := &db_models.City{
		Name:        name,
		CountryCode: code,
	}
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return response_models.CityResponse{}, databaseError(err, "save city")
	}
	return toCityResponse(city), nil
}

func (s *CityService) UpdateCity(ctx context.Context, id string, request request_models.UpdateCityRequest) (response_models.CityResponse, error) {
	city, err := s.get(ctx, id)
	if err != nil {
		return response_models.CityResponse{}, err
	}
	if request.CountryCode != nil {
		code, err := s.requireCountry(ctx, *request.CountryCode)
		if err != nil {
			return response_models.CityResponse{}, err
		}
		city.CountryCode = code
	}
	if request.Name != nil {
		if city.Name, err = requiredText("name", *request.Name); err != nil {
			return response_models.CityResponse{}, err
		}
	}
	if err := s.cityRepo.Update(ctx, city); err != nil {
		return response_models.CityResponse{}, updateError(err, utils.ErrCityNotFound, "update city")
	}
	return toCityResponse(city), nil
}

func (s *CityService) DeleteCity(ctx context.Context, id string) error {
	city, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	places, err := s.placeRepo.FindBy(ctx, db_models.PlaceFieldCityID, city.ID.String())
	if err != nil {
		return databaseError(err, "find city places")
	}
	if len(places) > 0 {
		return fmt.Errorf("%w: city still has %d place(s)", utils.ErrStillReferenced, len(places))
	}
	if err := s.cityRepo.Delete(ctx, city); err != nil {
		return databaseError(err, "delete city")
	}
	return nil
}

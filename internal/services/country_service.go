package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

type CountryServiceInterface interface {
	ListCountries(ctx context.Context) ([]response_models.CountryResponse, error)
	GetCountry(ctx context.Context, code string) (response_models.CountryResponse, error)
	ListCities(ctx context.Context, code string) ([]response_models.CityResponse, error)
	CreateCountry(ctx context.Context, request request_models.CreateCountryRequest) (response_models.CountryResponse, error)
	UpdateCountry(ctx context.Context, code string, request request_models.UpdateCountryRequest) (response_models.CountryResponse, error)
	DeleteCountry(ctx context.Context, code string) error
}

type CountryService struct {
	countryRepo repositories.Repository[db_models.Country]
	cityRepo    repositories.Repository[db_models.City]

	// serializes the code check with the save that follows
	mu sync.Mutex
}

func NewCountryService(
	countryRepo repositories.Repository[db_models.Country],
	cityRepo repositories.Repository[db_models.City],
) CountryServiceInterface {
	return &CountryService{
		countryRepo: countryRepo,
		cityRepo:    cityRepo,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// findCountry looks a country up by its ISO code, nil when unknown.
func findCountry(ctx context.Context, repo repositories.Repository[db_models.Country], code string) (*db_models.Country, error) {
	countries, err := repo.FindBy(ctx, db_models.CountryFieldCode, normalizeCode(code))
	if err != nil {
		return nil, databaseError(err, "find country by code")
	}
	if len(countries) == 0 {
		return nil, nil
	}
	return &countries[0], nil
}

func (s *CountryService) get(ctx context.Context, code string) (*db_models.Country, error) {
	country, err := findCountry(ctx, s.countryRepo, code)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrCountryNotFound, normalizeCode(code))
	}
	return country, nil
}

func (s *CountryService) ListCountries(ctx context.Context) ([]response_models.CountryResponse, error) {
	countries, err := s.countryRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list countries")
	}
	return mapAll(countries, toCountryResponse), nil
}

func (s *CountryService) GetCountry(ctx context.Context, code string) (response_models.CountryResponse, error) {
	country, err := s.get(ctx, code)
	if err != nil {
		return response_models.CountryResponse{}, err
	}
	return toCountryResponse(country), nil
}

func (s *CountryService) ListCities(ctx context.Context, code string) ([]response_models.CityResponse, error) {
	country, err := s.get(ctx, code)
	if err != nil {
		return nil, err
	}
	cities, err := s.cityRepo.FindBy(ctx, db_models.CityFieldCountryCode, country.Code)
	if err != nil {
		return nil, databaseError(err, "list country cities")
	}
	return mapAll(cities, toCityResponse), nil
}

func (s *CountryService) CreateCountry(ctx context.Context, request request_models.CreateCountryRequest) (response_models.CountryResponse, error) {
	name, err := requiredText("name", request.Name)
	if err != nil {
		return response_models.CountryResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := findCountry(ctx, s.countryRepo, request.Code)
	if err != nil {
		return response_models.CountryResponse{}, err
	}
	if existing != nil {
		return response_models.CountryResponse{}, utils.ErrCountryAlreadyExists
	}

	country := &db_models.Country{
		Code: normalizeCode(request.Code),
		Name: name,
	}
	if err := s.countryRepo.Save(ctx, country); err != nil {
		if isDuplicate(err) {
			return response_models.CountryResponse{}, utils.ErrCountryAlreadyExists
		}
		return response_models.CountryResponse{}, databaseError(err, "save country")
	}
	return toCountryResponse(country), nil
}

func (s *CountryService) UpdateCountry(ctx context.Context, code string, request request_models.UpdateCountryRequest) (response_models.CountryResponse, error) {
	country, err := s.get(ctx, code)
	if err != nil {
		return response_models.CountryResponse{}, err
	}
	if request.Name != nil {
		if country.Name, err = requiredText("name", *request.Name); err != nil {
			return response_models.CountryResponse{}, err
		}
	}
	if err := s.countryRepo.Update(ctx, country); err != nil {
		return response_models.CountryResponse{}, updateError(err, utils.ErrCountryNotFound, "update country")
	}
	return toCountryResponse(country), nil
}

func (s *CountryService) DeleteCountry(ctx context.Context, code string) error {
	country, err := s.get(ctx, code)
	if err != nil {
		return err
	}
	cities, err := s.cityRepo.FindBy(ctx, db_models.CityFieldCountryCode, country.Code)
	if err != nil {
		return databaseError(err, "find country cities")
	}
	if len(cities) > 0 {
		return fmt.Errorf("%w: country %s still has %d city(ies)", utils.ErrStillReferenced, country.Code, len(cities))
	}
	if err := s.countryRepo.Delete(ctx, country); err != nil {
		return databaseError(err, "delete country")
	}
	return nil
}

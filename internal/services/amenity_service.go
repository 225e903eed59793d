package services

import (
	"context"
	"sync"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

type AmenityServiceInterface interface {
	ListAmenities(ctx context.Context) ([]response_models.AmenityResponse, error)
	GetAmenity(ctx context.Context, id string) (response_models.AmenityResponse, error)
	CreateAmenity(ctx context.Context, request request_models.CreateAmenityRequest) (response_models.AmenityResponse, error)
	UpdateAmenity(ctx context.Context, id string, request request_models.UpdateAmenityRequest) (response_models.AmenityResponse, error)
	DeleteAmenity(ctx context.Context, id string) error
}

type AmenityService struct {
	amenityRepo repositories.Repository[db_models.Amenity]
	linkRepo    repositories.Repository[db_models.PlaceAmenity]

	// held from the name check to the write; only the db backend has a unique index
	mu sync.Mutex
}

func NewAmenityService(
	amenityRepo repositories.Repository[db_models.Amenity],
	linkRepo repositories.Repository[db_models.PlaceAmenity],
) AmenityServiceInterface {
	return &AmenityService{
		amenityRepo: amenityRepo,
		linkRepo:    linkRepo,
	}
}

func (s *AmenityService) get(ctx context.Context, id string) (*db_models.Amenity, error) {
	amenity, err := s.amenityRepo.Get(ctx, id)
	if err != nil {
		return nil, databaseError(err, "get amenity")
	}
	if amenity == nil {
		return nil, utils.ErrAmenityNotFound
	}
	return amenity, nil
}

func (s *AmenityService) nameTaken(ctx context.Context, name string) (bool, error) {
	amenities, err := s.amenityRepo.FindBy(ctx, db_models.AmenityFieldName, name)
	if err != nil {
		return false, databaseError(err, "find amenity by name")
	}
	return len(amenities) > 0, nil
}

func (s *AmenityService) ListAmenities(ctx context.Context) ([]response_models.AmenityResponse, error) {
	amenities, err := s.amenityRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list amenities")
	}
	return mapAll(amenities, toAmenityResponse), nil
}

func (s *AmenityService) GetAmenity(ctx context.Context, id string) (response_models.AmenityResponse, error) {
	amenity, err := s.get(ctx, id)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}
	return toAmenityResponse(amenity), nil
}

func (s *AmenityService) CreateAmenity(ctx context.Context, request request_models.CreateAmenityRequest) (response_models.AmenityResponse, error) {
	name, err := requiredText("name", request.Name)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	taken, err := s.nameTaken(ctx, name)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}
	if taken {
		return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyExists
	}

	amenity := &db_models.Amenity{Name: name}
	if err := s.amenityRepo.Save(ctx, amenity); err != nil {
		if isDuplicate(err) {
			return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyExists
		}
		return response_models.AmenityResponse{}, databaseError(err, "save amenity")
	}
	return toAmenityResponse(amenity), nil
}

func (s *AmenityService) UpdateAmenity(ctx context.Context, id string, request request_models.UpdateAmenityRequest) (response_models.AmenityResponse, error) {
	amenity, err := s.get(ctx, id)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}
	name, err := requiredText("name", request.Name)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if name != amenity.Name {
		taken, err := s.nameTaken(ctx, name)
		if err != nil {
			return response_models.AmenityResponse{}, err
		}
		if taken {
			return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyExists
		}
		amenity.Name = name
	}
	if err := s.amenityRepo.Update(ctx, amenity); err != nil {
		if isDuplicate(err) {
			return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyExists
		}
		return response_models.AmenityResponse{}, updateError(err, utils.ErrAmenityNotFound, "update amenity")
	}
	return toAmenityResponse(amenity), nil
}

// DeleteAmenity detaches the amenity from every place before removing it.
func (s *AmenityService) DeleteAmenity(ctx context.Context, id string) error {
	amenity, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	links, err := s.linkRepo.FindBy(ctx, db_models.PlaceAmenityFieldAmenityID, amenity.ID.String())
	if err != nil {
		return databaseError(err, "find amenity links")
	}
	for i := range links {
		if err := s.linkRepo.Delete(ctx, &links[i]); err != nil {
			return databaseError(err, "delete amenity link")
		}
	}
	if err := s.amenityRepo.Delete(ctx, amenity); err != nil {
		return databaseError(err, "delete amenity")
	}
	return nil
}

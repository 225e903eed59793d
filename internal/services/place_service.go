package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/request_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

type PlaceServiceInterface interface {
	ListPlaces(ctx context.Context) ([]response_models.PlaceResponse, error)
	GetPlace(ctx context.Context, id string) (response_models.PlaceResponse, error)
	CreatePlace(ctx context.Context, request request_models.CreatePlaceRequest, caller Caller) (response_models.PlaceResponse, error)
	UpdatePlace(ctx context.Context, id string, request request_models.UpdatePlaceRequest, caller Caller) (response_models.PlaceResponse, error)
	DeletePlace(ctx context.Context, id string, caller Caller) error
	ListAmenities(ctx context.Context, placeID string) ([]response_models.AmenityResponse, error)
	AddAmenity(ctx context.Context, placeID, amenityID string, caller Caller) (response_models.AmenityResponse, error)
	RemoveAmenity(ctx context.Context, placeID, amenityID string, caller Caller) error
}

type PlaceService struct {
	placeRepo   repositories.Repository[db_models.Place]
	userRepo    repositories.Repository[db_models.User]
	cityRepo    repositories.Repository[db_models.City]
	amenityRepo repositories.Repository[db_models.Amenity]
	linkRepo    repositories.Repository[db_models.PlaceAmenity]
	reviewRepo  repositories.Repository[db_models.Review]

	// serializes the link check with the link write
	linkMu sync.Mutex
}

func NewPlaceService(
	placeRepo repositories.Repository[db_models.Place],
	userRepo repositories.Repository[db_models.User],
	cityRepo repositories.Repository[db_models.City],
	amenityRepo repositories.Repository[db_models.Amenity],
	linkRepo repositories.Repository[db_models.PlaceAmenity],
	reviewRepo repositories.Repository[db_models.Review],
) PlaceServiceInterface {
	return &PlaceService{
		placeRepo:   placeRepo,
		userRepo:    userRepo,
		cityRepo:    cityRepo,
		amenityRepo: amenityRepo,
		linkRepo:    linkRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *PlaceService) get(ctx context.Context, id string) (*db_models.Place, error) {
	place, err := s.placeRepo.Get(ctx, id)
	if err != nil {
		return nil, databaseError(err, "get place")
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	return place, nil
}

func (s *PlaceService) requireCity(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: city_id is required", utils.ErrInvalidReference)
	}
	city, err := s.cityRepo.Get(ctx, id.String())
	if err != nil {
		return databaseError(err, "get city")
	}
	if city == nil {
		return fmt.Errorf("%w: city %s", utils.ErrInvalidReference, id)
	}
	return nil
}

func (s *PlaceService) ListPlaces(ctx context.Context) ([]response_models.PlaceResponse, error) {
	places, err := s.placeRepo.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list places")
	}
	return mapAll(places, toPlaceResponse), nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id string) (response_models.PlaceResponse, error) {
	place, err := s.get(ctx, id)
	if err != nil {
		return response_models.PlaceResponse{}, err
	}
	return toPlaceResponse(place), nil
}

// CreatePlace makes the caller the host of the new place.
func (s *PlaceService) CreatePlace(ctx context.Context, request request_models.CreatePlaceRequest, caller Caller) (response_models.PlaceResponse, error) {
	name, err := requiredText("name", request.Name)
	if err != nil {
		return response_models.PlaceResponse{}, err
	}
	hostID, err := uuid.Parse(caller.UserID)
	if err != nil {
		return response_models.PlaceResponse{}, utils.ErrUnauthorized
	}
	host, err := s.userRepo.Get(ctx, hostID.String())
	if err != nil {
		return response_models.PlaceResponse{}, databaseError(err, "get host")
	}
	if host == nil {
		return response_models.PlaceResponse{}, fmt.Errorf("%w: host %s", utils.ErrInvalidReference, hostID)
	}
	if err := s.requireCity(ctx, request.CityID); err != nil {
		return response_models.PlaceResponse{}, err
	}

	place := &db_models.Place{
		Name:              name,
		Description:       request.Description,
		Address:           request.Address,
		Latitude:          request.Latitude,
		Longitude:         request.Longitude,
		HostID:            hostID,
		CityID:            request.CityID,
		PricePerNight:     request.PricePerNight,
		NumberOfRooms:     request.NumberOfRooms,
		NumberOfBathrooms: request.NumberOfBathrooms,
		MaxGuests:         request.MaxGuests,
	}
	if err := s.placeRepo.Save(ctx, place); err != nil {
		return response_models.PlaceResponse{}, databaseError(err, "save place")
	}
	return toPlaceResponse(place), nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id string, request request_models.UpdatePlaceRequest, caller Caller) (response_models.PlaceResponse, error) {
	place, err := s.get(ctx, id)
	if err != nil {
		return response_models.PlaceResponse{}, err
	}
	if !caller.CanModify(place.HostID) {
		return response_models.PlaceResponse{}, utils.ErrForbidden
	}

	if request.CityID != nil {
		if err := s.requireCity(ctx, *request.CityID); err != nil {
			return response_models.PlaceResponse{}, err
		}
		place.CityID = *request.CityID
	}
	if request.Name != nil {
		if place.Name, err = requiredText("name", *request.Name); err != nil {
			return response_models.PlaceResponse{}, err
		}
	}
	if request.Description != nil {
		place.Description = *request.Description
	}
	if request.Address != nil {
		place.Address = *request.Address
	}
	if request.Latitude != nil {
		place.Latitude = *request.Latitude
	}
	if request.Longitude != nil {
		place.Longitude = *request.Longitude
	}
	if request.PricePerNight != nil {
		place.PricePerNight = *request.PricePerNight
	}
	if request.NumberOfRooms != nil {
		place.NumberOfRooms = *request.NumberOfRooms
	}
	if request.NumberOfBathrooms != nil {
		place.NumberOfBathrooms = *request.NumberOfBathrooms
	}
	if request.MaxGuests != nil {
		place.MaxGuests = *request.MaxGuests
	}

	if err := s.placeRepo.Update(ctx, place); err != nil {
		return response_models.PlaceResponse{}, updateError(err, utils.ErrPlaceNotFound, "update place")
	}
	return toPlaceResponse(place), nil
}

// DeletePlace also drops the place's reviews and amenity links.
func (s *PlaceService) DeletePlace(ctx context.Context, id string, caller Caller) error {
	place, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanModify(place.HostID) {
		return utils.ErrForbidden
	}

	reviews, err := s.reviewRepo.FindBy(ctx, db_models.ReviewFieldPlaceID, place.ID.String())
	if err != nil {
		return databaseError(err, "find place reviews")
	}
	for i := range reviews {
		if err := s.reviewRepo.Delete(ctx, &reviews[i]); err != nil {
			return databaseError(err, "delete place review")
		}
	}

	links, err := s.linkRepo.FindBy(ctx, db_models.PlaceAmenityFieldPlaceID, place.ID.String())
	if err != nil {
		return databaseError(err, "find place amenities")
	}
	for i := range links {
		if err := s.linkRepo.Delete(ctx, &links[i]); err != nil {
			return databaseError(err, "delete place amenity")
		}
	}

	if err := s.placeRepo.Delete(ctx, place); err != nil {
		return databaseError(err, "delete place")
	}
	return nil
}

func (s *PlaceService) ListAmenities(ctx context.Context, placeID string) ([]response_models.AmenityResponse, error) {
	place, err := s.get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.FindBy(ctx, db_models.PlaceAmenityFieldPlaceID, place.ID.String())
	if err != nil {
		return nil, databaseError(err, "find place amenities")
	}

	out := make([]response_models.AmenityResponse, 0, len(links))
	for _, link := range links {
		amenity, err := s.amenityRepo.Get(ctx, link.AmenityID.String())
		if err != nil {
			return nil, databaseError(err, "get amenity")
		}
		// a dangling link is skipped rather than failing the listing
		if amenity == nil {
			continue
		}
		out = append(out, toAmenityResponse(amenity))
	}
	return out, nil
}

func (s *PlaceService) findLink(ctx context.Context, placeID, amenityID uuid.UUID) (*db_models.PlaceAmenity, error) {
	links, err := s.linkRepo.FindBy(ctx, db_models.PlaceAmenityFieldPlaceID, placeID.String())
	if err != nil {
		return nil, databaseError(err, "find place amenities")
	}
	for i := range links {
		if links[i].AmenityID == amenityID {
			return &links[i], nil
		}
	}
	return nil, nil
}

func (s *PlaceService) placeAndAmenity(ctx context.Context, placeID, amenityID string, caller Caller) (*db_models.Place, *db_models.Amenity, error) {
	place, err := s.get(ctx, placeID)
	if err != nil {
		return nil, nil, err
	}
	if !caller.CanModify(place.HostID) {
		return nil, nil, utils.ErrForbidden
	}
	amenity, err := s.amenityRepo.Get(ctx, amenityID)
	if err != nil {
		return nil, nil, databaseError(err, "get amenity")
	}
	if amenity == nil {
		return nil, nil, utils.ErrAmenityNotFound
	}
	return place, amenity, nil
}

func (s *PlaceService) AddAmenity(ctx context.Context, placeID, amenityID string, caller Caller) (response_models.AmenityResponse, error) {
	place, amenity, err := s.placeAndAmenity(ctx, placeID, amenityID, caller)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}

	s.linkMu.Lock()
	defer s.linkMu.Unlock()
	existing, err := s.findLink(ctx, place.ID, amenity.ID)
	if err != nil {
		return response_models.AmenityResponse{}, err
	}
	if existing != nil {
		return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyLinked
	}

	link := &db_models.PlaceAmenity{PlaceID: place.ID, AmenityID: amenity.ID}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		if isDuplicate(err) {
			return response_models.AmenityResponse{}, utils.ErrAmenityAlreadyLinked
		}
		return response_models.AmenityResponse{}, databaseError(err, "save place amenity")
	}
	return toAmenityResponse(amenity), nil
}

func (s *PlaceService) RemoveAmenity(ctx context.Context, placeID, amenityID string, caller Caller) error {
	place, amenity, err := s.placeAndAmenity(ctx, placeID, amenityID, caller)
	if err != nil {
		return err
	}
	link, err := s.findLink(ctx, place.ID, amenity.ID)
	if err != nil {
		return err
	}
	if link == nil {
		return utils.ErrAmenityNotLinked
	}
	if err := s.linkRepo.Delete(ctx, link); err != nil {
		return databaseError(err, "delete place amenity")
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"hbnb/internal/models/db_models"
	"hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

// Caller identifies who is acting. The zero value is an anonymous caller.
type Caller struct {
	UserID  string
	IsAdmin bool
}

func (c Caller) Owns(id fmt.Stringer) bool {
	return c.UserID != "" && c.UserID == id.String()
}

func (c Caller) CanModify(ownerID fmt.Stringer) bool {
	return c.IsAdmin || c.Owns(ownerID)
}

func databaseError(err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return fmt.Errorf("%w: %s", utils.ErrDatabaseError, msg)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// updateError maps a row deleted between load and write to notFound.
func updateError(err error, notFound error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return databaseError(err, msg)
}

// requiredText trims s and rejects what is left empty.
func requiredText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s must not be blank", utils.ErrInvalidInput, field)
	}
	return s, nil
}

func toUserResponse(u *db_models.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: utils.FormatUnixRFC3339(u.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(u.UpdatedAt),
	}
}

func toCountryResponse(c *db_models.Country) response_models.CountryResponse {
	return response_models.CountryResponse{
		ID:        c.ID.String(),
		Code:      c.Code,
		Name:      c.Name,
		CreatedAt: utils.FormatUnixRFC3339(c.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(c.UpdatedAt),
	}
}

func toCityResponse(c *db_models.City) response_models.CityResponse {
	return response_models.CityResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		CountryCode: c.CountryCode,
		CreatedAt:   utils.FormatUnixRFC3339(c.CreatedAt),
		UpdatedAt:   utils.FormatUnixRFC3339(c.UpdatedAt),
	}
}

func toPlaceResponse(p *db_models.Place) response_models.PlaceResponse {
	return response_models.PlaceResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Description:       p.Description,
		Address:           p.Address,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		HostID:            p.HostID.String(),
		CityID:            p.CityID.String(),
		PricePerNight:     p.PricePerNight,
		NumberOfRooms:     p.NumberOfRooms,
		NumberOfBathrooms: p.NumberOfBathrooms,
		MaxGuests:         p.MaxGuests,
		CreatedAt:         utils.FormatUnixRFC3339(p.CreatedAt),
		UpdatedAt:         utils.FormatUnixRFC3339(p.UpdatedAt),
	}
}

func toAmenityResponse(a *db_models.Amenity) response_models.AmenityResponse {
	return response_models.AmenityResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		CreatedAt: utils.FormatUnixRFC3339(a.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(a.UpdatedAt),
	}
}

func toReviewResponse(r *db_models.Review) response_models.ReviewResponse {
	return response_models.ReviewResponse{
		ID:        r.ID.String(),
		PlaceID:   r.PlaceID.String(),
		UserID:    r.UserID.String(),
		Comment:   r.Comment,
		Rating:    r.Rating,
		CreatedAt: utils.FormatUnixRFC3339(r.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(r.UpdatedAt),
	}
}

func mapAll[M any, R any](models []M, fn func(*M) R) []R {
	out := make([]R, 0, len(models))
	for i := range models {
		out = append(out, fn(&models[i]))
	}
	return out
}

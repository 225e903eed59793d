package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	dbm "hbnb/internal/models/db_models"
	resp "hbnb/internal/models/response_models"
	"hbnb/internal/repositories"
)

const defaultTopPlaces = 5

type DashboardService interface {
	BuildDashboard(ctx context.Context, limit int) (*resp.DashboardReport, error)
}

type dashboardService struct {
	users     repositories.Repository[dbm.User]
	countries repositories.Repository[dbm.Country]
	cities    repositories.Repository[dbm.City]
	places    repositories.Repository[dbm.Place]
	amenities repositories.Repository[dbm.Amenity]
	reviews   repositories.Repository[dbm.Review]
}

func NewDashboardService(
	users repositories.Repository[dbm.User],
	countries repositories.Repository[dbm.Country],
	cities repositories.Repository[dbm.City],
	places repositories.Repository[dbm.Place],
	amenities repositories.Repository[dbm.Amenity],
	reviews repositories.Repository[dbm.Review],
) DashboardService {
	return &dashboardService{
		users:     users,
		countries: countries,
		cities:    cities,
		places:    places,
		amenities: amenities,
		reviews:   reviews,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *dashboardService) BuildDashboard(ctx context.Context, limit int) (*resp.DashboardReport, error) {
	if limit <= 0 {
		limit = defaultTopPlaces
	}

	// ---------- Core counts ----------
	var kpis resp.KPIBlock
	var err error

	if kpis.TotalCountries, err = s.countries.Count(ctx); err != nil {
		return nil, databaseError(err, "count countries")
	}
	if kpis.TotalCities, err = s.cities.Count(ctx); err != nil {
		return nil, databaseError(err, "count cities")
	}
	if kpis.TotalPlaces, err = s.places.Count(ctx); err != nil {
		return nil, databaseError(err, "count places")
	}
	if kpis.TotalAmenities, err = s.amenities.Count(ctx); err != nil {
		return nil, databaseError(err, "count amenities")
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list users")
	}
	kpis.TotalUsers = int64(len(users))
	for _, u := range users {
		if u.IsAdmin {
			kpis.TotalAdmins++
		}
	}

	// ---------- Ratings ----------
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, databaseError(err, "list reviews")
	}
	kpis.TotalReviews = int64(len(reviews))

	type agg struct {
		count int
		sum   int
	}
	perPlace := make(map[uuid.UUID]*agg)
	total := 0
	for _, r := range reviews {
		total += r.Rating
		a, ok := perPlace[r.PlaceID]
		if !ok {
			a = &agg{}
			perPlace[r.PlaceID] = a
		}
		a.count++
		a.sum += r.Rating
	}
	if len(reviews) > 0 {
		kpis.AverageRating = round2(float64(total) / float64(len(reviews)))
	}

	// ---------- Top places ----------
	top := make([]resp.TopPlaceRow, 0, len(perPlace))
	for placeID, a := range perPlace {
		place, err := s.places.Get(ctx, placeID.String())
		if err != nil {
			return nil, databaseError(err, "get place")
		}
		if place == nil {
			continue
		}
		top = append(top, resp.TopPlaceRow{
			PlaceID:       placeID.String(),
			Name:          place.Name,
			ReviewCount:   a.count,
			AverageRating: round2(float64(a.sum) / float64(a.count)),
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].AverageRating != top[j].AverageRating {
			return top[i].AverageRating > top[j].AverageRating
		}
		if top[i].ReviewCount != top[j].ReviewCount {
			return top[i].ReviewCount > top[j].ReviewCount
		}
		return top[i].PlaceID < top[j].PlaceID
	})
	if len(top) > limit {
		top = top[:limit]
	}

	return &resp.DashboardReport{
		GeneratedAt: time.Now().UTC(),
		KPIs:        kpis,
		TopPlaces:   top,
	}, nil
}

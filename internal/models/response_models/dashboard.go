package response_models

import "time"

type KPIBlock struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAdmins    int64 `json:"total_admins"`
	TotalCountries int64 `json:"total_countries"`
	TotalCities    int64 `json:"total_cities"`
	TotalPlaces    int64 `json:"total_places"`
	TotalAmenities int64 `json:"total_amenities"`
	TotalReviews   int64 `json:"total_reviews"`

	// mean rating over every review, 0 when there are none
	AverageRating float64 `json:"average_rating"`
}

type TopPlaceRow struct {
	PlaceID       string  `json:"place_id"`
	Name          string  `json:"name"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

type DashboardReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	KPIs        KPIBlock      `json:"kpis"`
	TopPlaces   []TopPlaceRow `json:"top_places"`
}

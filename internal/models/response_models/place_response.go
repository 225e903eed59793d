package response_models

type PlaceResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	HostID            string  `json:"host_id"`
	CityID            string  `json:"city_id"`
	PricePerNight     int     `json:"price_per_night"`
	NumberOfRooms     int     `json:"number_of_rooms"`
	NumberOfBathrooms int     `json:"number_of_bathrooms"`
	MaxGuests         int     `json:"max_guests"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type AmenityResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	PlaceID   string `json:"place_id"`
	UserID    string `json:"user_id"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

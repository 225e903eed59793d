package request_models

import "github.com/google/uuid"

type CreatePlaceRequest struct {
	Name              string    `json:"name" binding:"required,max=120"`
	Description       string    `json:"description"`
	Address           string    `json:"address" binding:"max=255"`
	Latitude          float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude         float64   `json:"longitude" binding:"min=-180,max=180"`
	CityID            uuid.UUID `json:"city_id" binding:"required"`
	PricePerNight     int       `json:"price_per_night" binding:"min=0"`
	NumberOfRooms     int       `json:"number_of_rooms" binding:"min=0"`
	NumberOfBathrooms int       `json:"number_of_bathrooms" binding:"min=0"`
	MaxGuests         int       `json:"max_guests" binding:"min=0"`
}

type UpdatePlaceRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=1,max=120"`
	Description       *string    `json:"description"`
	Address           *string    `json:"address" binding:"omitempty,max=255"`
	Latitude          *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude         *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	CityID            *uuid.UUID `json:"city_id"`
	PricePerNight     *int       `json:"price_per_night" binding:"omitempty,min=0"`
	NumberOfRooms     *int       `json:"number_of_rooms" binding:"omitempty,min=0"`
	NumberOfBathrooms *int       `json:"number_of_bathrooms" binding:"omitempty,min=0"`
	MaxGuests         *int       `json:"max_guests" binding:"omitempty,min=0"`
}

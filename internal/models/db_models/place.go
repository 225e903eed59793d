package db_models

import "github.com/google/uuid"

const (
	PlaceFieldHostID = "host_id"
	PlaceFieldCityID = "city_id"
)

type Place struct {
	BaseModel
	Name              string    `gorm:"type:varchar(120);not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	Address           string    `gorm:"type:varchar(255)" json:"address"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	HostID            uuid.UUID `gorm:"type:varchar(36);index;not null" json:"host_id"`
	CityID            uuid.UUID `gorm:"type:varchar(36);index;not null" json:"city_id"`
	PricePerNight     int       `gorm:"not null" json:"price_per_night"`
	NumberOfRooms     int       `gorm:"not null" json:"number_of_rooms"`
	NumberOfBathrooms int       `gorm:"not null" json:"number_of_bathrooms"`
	MaxGuests         int       `gorm:"not null" json:"max_guests"`
}

func (Place) TableName() string {
	return "places"
}

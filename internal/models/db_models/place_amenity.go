package db_models

import "github.com/google/uuid"

const (
	PlaceAmenityFieldPlaceID   = "place_id"
	PlaceAmenityFieldAmenityID = "amenity_id"
)

// PlaceAmenity links a place to one of its amenities.
type PlaceAmenity struct {
	BaseModel
	PlaceID   uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_place_amenity;not null" json:"place_id"`
	AmenityID uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_place_amenity;not null" json:"amenity_id"`
}

func (PlaceAmenity) TableName() string {
	return "place_amenities"
}

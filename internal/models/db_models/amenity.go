package db_models

const (
	AmenityFieldName = "name"
)

type Amenity struct {
	BaseModel
	Name string `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
}

func (Amenity) TableName() string {
	return "amenities"
}

package db_models

const (
	CityFieldCountryCode = "country_code"
)

type City struct {
	BaseModel
	Name        string `gorm:"type:varchar(120);not null" json:"name"`
	CountryCode string `gorm:"type:varchar(2);index;not null" json:"country_code"`
}

func (City) TableName() string {
	return "cities"
}

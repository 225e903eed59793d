package db_models

const (
	CountryFieldCode = "code"
)

type Country struct {
	BaseModel
	Code string `gorm:"type:varchar(2);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(120);not null" json:"name"`
}

func (Country) TableName() string {
	return "countries"
}

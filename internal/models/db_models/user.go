package db_models

const (
	UserFieldEmail = "email"
)

type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"type:varchar(120)" json:"first_name"`
	LastName     string `gorm:"type:varchar(120)" json:"last_name"`
	PasswordHash string `gorm:"type:varchar(128);not null" json:"password_hash"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}

func (User) TableName() string {
	return "users"
}

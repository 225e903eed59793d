package db_models

import "github.com/google/uuid"

const (
	ReviewFieldPlaceID = "place_id"
	ReviewFieldUserID  = "user_id"
)

type Review struct {
	BaseModel
	PlaceID uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_review_place_user;not null" json:"place_id"`
	UserID  uuid.UUID `gorm:"type:varchar(36);index;uniqueIndex:idx_review_place_user;not null" json:"user_id"`
	Comment string    `gorm:"type:text;not null" json:"comment"`
	Rating  int       `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
}

func (Review) TableName() string {
	return "reviews"
}

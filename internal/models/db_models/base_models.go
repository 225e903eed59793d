package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"time"
)

// Entity is implemented by every persisted model through BaseModel plus a
// TableName method. Non-database repositories key their storage on TableName.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() int64
	TableName() string
	Stamp()
}

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *BaseModel) GetID() uuid.UUID {
	return b.ID
}

func (b *BaseModel) GetCreatedAt() int64 {
	return b.CreatedAt
}

// Stamp assigns an id when missing, keeps an existing creation time and
// moves the update time forward.
func (b *BaseModel) Stamp() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().Unix()
	if b.CreatedAt == 0 {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Hooks to manage int64 timestamps
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	b.Stamp()
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().Unix()
	return nil
}

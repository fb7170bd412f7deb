package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every persisted model. IDs are UUID strings assigned
// on create.
type Base struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"createdOn"`
	UpdatedAt time.Time      `json:"updatedOn"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

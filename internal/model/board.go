package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Board struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	Description string     `gorm:"not null;default:''"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Board) BeforeSave(tx *gorm.DB) error {
	if isBlank(b.Name) {
		return ErrBlankName
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BoardID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title        string     `gorm:"size:255;not null"`
	Description  string     `gorm:"not null;default:''"`
	CreationDate time.Time  `gorm:"autoCreateTime"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`

	Board *Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Owner *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Item) BeforeSave(tx *gorm.DB) error {
	if isBlank(i.Title) {
		return ErrBlankTitle
	}
	return nil
}

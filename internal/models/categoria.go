package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"size:100;not null;uniqueIndex"`
	Descripcion string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Categoria) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

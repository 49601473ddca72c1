package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstadoSucursal string

const (
	SucursalActiva   EstadoSucursal = "activa"
	SucursalInactiva EstadoSucursal = "inactiva"
)

// Sucursal: local físico del restaurante. Nunca se elimina, solo se desactiva.
type Sucursal struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre                   string    `gorm:"size:100;not null;uniqueIndex"`
	Direccion                string    `gorm:"size:255;not null"`
	Telefono                 string    `gorm:"size:50;not null"`
	AdministradorPrincipalID *uuid.UUID `gorm:"type:uuid"`
	AdministradorPrincipal   *Usuario   `gorm:"foreignKey:AdministradorPrincipalID"`
	Estado                   EstadoSucursal `gorm:"size:10;not null;default:'activa'"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (s *Sucursal) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

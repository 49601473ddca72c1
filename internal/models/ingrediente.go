package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingrediente: Disponible se recalcula como stock > 0 tras cada
// movimiento de stock; Stock nunca baja de cero.
type Ingrediente struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre          string          `gorm:"size:100;not null;uniqueIndex"`
	PrecioAdicional decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Disponible      bool            `gorm:"not null;default:true;index"`
	Stock           float64         `gorm:"not null;default:0;index"`
	StockMinimo     float64         `gorm:"not null;default:10"`
	UnidadMedida    string          `gorm:"size:20"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (i *Ingrediente) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

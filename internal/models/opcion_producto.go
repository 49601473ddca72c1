package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpcionProducto: un ingrediente configurable dentro de un producto.
// El par (producto, ingrediente) es único.
type OpcionProducto struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductoID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_ingrediente,priority:1"`
	Producto               *Producto
	IngredienteID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_ingrediente,priority:2"`
	Ingrediente            *Ingrediente
	EsPredeterminado       bool    `gorm:"not null;default:true"`
	EsRemovible            bool    `gorm:"not null;default:true"`
	CantidadPredeterminada float64 `gorm:"not null;default:1"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (o *OpcionProducto) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

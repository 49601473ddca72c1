package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ParaLlevar string

const (
	ParaLlevarSi    ParaLlevar = "sí"
	ParaLlevarNo    ParaLlevar = "no"
	ParaLlevarAmbos ParaLlevar = "ambos"
)

func (p ParaLlevar) Valida() bool {
	return p == ParaLlevarSi || p == ParaLlevarNo || p == ParaLlevarAmbos
}

type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre      string          `gorm:"size:100;not null;index"`
	Descripcion string          `gorm:"size:255"`
	PrecioBase  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Categoria   *Categoria
	Imagen      string     `gorm:"size:255"`
	Disponible  bool       `gorm:"not null;default:true;index"`
	ParaLlevar  ParaLlevar `gorm:"size:10;not null;default:'ambos'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Producto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

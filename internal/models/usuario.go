package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rol string

const (
	RolAdministrador Rol = "administrador"
	RolCajero        Rol = "cajero"
	RolCocinero      Rol = "cocinero"
)

type EstadoUsuario string

const (
	UsuarioActivo   EstadoUsuario = "activo"
	UsuarioInactivo EstadoUsuario = "inactivo"
)

// Usuario: cuenta de personal con rol y sucursal de origen.
// Contrasena guarda el hash bcrypt, nunca el texto plano.
type Usuario struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre             string    `gorm:"size:100;not null"`
	Usuario            string    `gorm:"size:100;uniqueIndex;not null"`
	Contrasena         string    `gorm:"size:255;not null"`
	Rol                Rol       `gorm:"size:20;not null"`
	SucursalID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Sucursal           *Sucursal
	Estado             EstadoUsuario `gorm:"size:10;not null;default:'activo'"`
	CodigoAutorizacion string        `gorm:"size:50"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

package database

import (
	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open conecta a Postgres y ejecuta las migraciones automáticas.
// Las referencias entre entidades se validan en la capa de aplicación,
// por eso no se generan constraints de clave foránea (Usuario y
// Sucursal se referencian mutuamente).
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Sucursal{},
		&models.Usuario{},
		&models.Categoria{},
		&models.Producto{},
		&models.Ingrediente{},
		&models.OpcionProducto{},
	)
}

package ingredientes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredienteView struct {
	ID                 uuid.UUID       `json:"id"`
	Nombre             string          `json:"nombre"`
	PrecioAdicional    decimal.Decimal `json:"precio_adicional"`
	Disponible         bool            `json:"disponible"`
	Stock              float64         `json:"stock"`
	StockMinimo        float64         `json:"stock_minimo"`
	UnidadMedida       string          `json:"unidad_medida"`
	FechaCreacion      time.Time       `json:"fecha_creacion"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion"`
}

func toView(i *models.Ingrediente) IngredienteView {
	return IngredienteView{
		ID:                 i.ID,
		Nombre:             i.Nombre,
		PrecioAdicional:    i.PrecioAdicional,
		Disponible:         i.Disponible,
		Stock:              i.Stock,
		StockMinimo:        i.StockMinimo,
		UnidadMedida:       i.UnidadMedida,
		FechaCreacion:      i.CreatedAt,
		FechaActualizacion: i.UpdatedAt,
	}
}

type CreateRequest struct {
	Nombre          string           `json:"nombre"`
	PrecioAdicional *decimal.Decimal `json:"precio_adicional"`
	Disponible      *bool            `json:"disponible"`
	Stock           *float64         `json:"stock"`
	StockMinimo     *float64         `json:"stock_minimo"`
	UnidadMedida    string           `json:"unidad_medida"`
}

type UpdateRequest struct {
	Nombre          *string          `json:"nombre"`
	PrecioAdicional *decimal.Decimal `json:"precio_adicional"`
	Disponible      *bool            `json:"disponible"`
	Stock           *float64         `json:"stock"`
	StockMinimo     *float64         `json:"stock_minimo"`
	UnidadMedida    *string          `json:"unidad_medida"`
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Session(&gorm.Session{})
		if disponible := c.Query("disponible"); disponible != "" {
			query = query.Where("disponible = ?", disponible == "true")
		}

		var ingredientes []models.Ingrediente
		if err := query.Find(&ingredientes).Error; err != nil {
			return err
		}

		res := make([]IngredienteView, 0, len(ingredientes))
		for i := range ingredientes {
			res = append(res, toView(&ingredientes[i]))
		}
		return respond.OK(c, "", res)
	}
}

func GetHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var ingrediente models.Ingrediente
		if err := db.First(&ingrediente, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
			}
			return err
		}
		return respond.OK(c, "", toView(&ingrediente))
	}
}

func CreateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre del ingrediente es requerido")
		}

		var count int64
		db.Model(&models.Ingrediente{}).Where("nombre = ?", body.Nombre).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un ingrediente con este nombre")
		}

		ingrediente := models.Ingrediente{
			Nombre:       body.Nombre,
			Disponible:   true,
			StockMinimo:  10,
			UnidadMedida: strings.TrimSpace(body.UnidadMedida),
		}
		if body.PrecioAdicional != nil {
			if body.PrecioAdicional.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "El precio adicional no puede ser negativo")
			}
			ingrediente.PrecioAdicional = body.PrecioAdicional.Round(2)
		}
		if body.Disponible != nil {
			ingrediente.Disponible = *body.Disponible
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			ingrediente.Stock = *body.Stock
		}
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock mínimo no puede ser negativo")
			}
			ingrediente.StockMinimo = *body.StockMinimo
		}

		if err := db.Create(&ingrediente).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe un ingrediente con este nombre")
			}
			return err
		}
		return respond.Created(c, "Ingrediente creado exitosamente", toView(&ingrediente))
	}
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var ingrediente models.Ingrediente
		if err := db.First(&ingrediente, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
			}
			return err
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del ingrediente no puede estar vacío")
			}
			if nombre != ingrediente.Nombre {
				var count int64
				db.Model(&models.Ingrediente{}).Where("nombre = ?", nombre).Count(&count)
				if count > 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Ya existe un ingrediente con este nombre")
				}
			}
			ingrediente.Nombre = nombre
		}
		if body.PrecioAdicional != nil {
			if body.PrecioAdicional.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "El precio adicional no puede ser negativo")
			}
			ingrediente.PrecioAdicional = body.PrecioAdicional.Round(2)
		}
		if body.Disponible != nil {
			ingrediente.Disponible = *body.Disponible
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			ingrediente.Stock = *body.Stock
		}
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock mínimo no puede ser negativo")
			}
			ingrediente.StockMinimo = *body.StockMinimo
		}
		if body.UnidadMedida != nil {
			ingrediente.UnidadMedida = strings.TrimSpace(*body.UnidadMedida)
		}

		if err := db.Save(&ingrediente).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe un ingrediente con este nombre")
			}
			return err
		}
		return respond.OK(c, "Ingrediente actualizado exitosamente", toView(&ingrediente))
	}
}

// DeleteHandler elimina de forma definitiva; se bloquea mientras haya
// opciones de producto que referencien el ingrediente.
func DeleteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var ingrediente models.Ingrediente
		if err := db.First(&ingrediente, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
			}
			return err
		}

		var opciones int64
		if err := db.Model(&models.OpcionProducto{}).Where("ingrediente_id = ?", id).Count(&opciones).Error; err != nil {
			return err
		}
		if opciones > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No se puede eliminar el ingrediente porque está asociado a %d opciones de producto", opciones))
		}

		if err := db.Delete(&ingrediente).Error; err != nil {
			return err
		}
		return respond.OK(c, "Ingrediente eliminado exitosamente", nil)
	}
}

package opciones

import (
	"errors"
	"time"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductoResumen struct {
	ID         uuid.UUID       `json:"id"`
	Nombre     string          `json:"nombre"`
	PrecioBase decimal.Decimal `json:"precio_base"`
}

type IngredienteResumen struct {
	ID              uuid.UUID       `json:"id"`
	Nombre          string          `json:"nombre"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
	Disponible      bool            `json:"disponible"`
	Stock           float64         `json:"stock"`
}

type OpcionView struct {
	ID                     uuid.UUID           `json:"id"`
	Producto               *ProductoResumen    `json:"producto"`
	Ingrediente            *IngredienteResumen `json:"ingrediente"`
	EsPredeterminado       bool                `json:"es_predeterminado"`
	EsRemovible            bool                `json:"es_removible"`
	CantidadPredeterminada float64             `json:"cantidad_predeterminada"`
	FechaCreacion          time.Time           `json:"fecha_creacion"`
	FechaActualizacion     time.Time           `json:"fecha_actualizacion"`
}

func toView(o *models.OpcionProducto) OpcionView {
	view := OpcionView{
		ID:                     o.ID,
		EsPredeterminado:       o.EsPredeterminado,
		EsRemovible:            o.EsRemovible,
		CantidadPredeterminada: o.CantidadPredeterminada,
		FechaCreacion:          o.CreatedAt,
		FechaActualizacion:     o.UpdatedAt,
	}
	if o.Producto != nil {
		view.Producto = &ProductoResumen{
			ID:         o.Producto.ID,
			Nombre:     o.Producto.Nombre,
			PrecioBase: o.Producto.PrecioBase,
		}
	}
	if o.Ingrediente != nil {
		view.Ingrediente = &IngredienteResumen{
			ID:              o.Ingrediente.ID,
			Nombre:          o.Ingrediente.Nombre,
			PrecioAdicional: o.Ingrediente.PrecioAdicional,
			Disponible:      o.Ingrediente.Disponible,
			Stock:           o.Ingrediente.Stock,
		}
	}
	return view
}

type CreateRequest struct {
	Producto               string   `json:"producto"`
	Ingrediente            string   `json:"ingrediente"`
	EsPredeterminado       *bool    `json:"es_predeterminado"`
	EsRemovible            *bool    `json:"es_removible"`
	CantidadPredeterminada *float64 `json:"cantidad_predeterminada"`
}

type UpdateRequest struct {
	EsPredeterminado       *bool    `json:"es_predeterminado"`
	EsRemovible            *bool    `json:"es_removible"`
	CantidadPredeterminada *float64 `json:"cantidad_predeterminada"`
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Preload("Producto").Preload("Ingrediente")
		if producto := c.Query("producto"); producto != "" {
			query = query.Where("producto_id = ?", producto)
		}
		if ingrediente := c.Query("ingrediente"); ingrediente != "" {
			query = query.Where("ingrediente_id = ?", ingrediente)
		}

		var opciones []models.OpcionProducto
		if err := query.Find(&opciones).Error; err != nil {
			return err
		}

		res := make([]OpcionView, 0, len(opciones))
		for i := range opciones {
			res = append(res, toView(&opciones[i]))
		}
		return respond.OK(c, "", res)
	}
}

func ListByProductoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productoID, err := uuid.Parse(c.Params("productoId"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", productoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}
			return err
		}

		var opciones []models.OpcionProducto
		err = db.Preload("Producto").Preload("Ingrediente").
			Where("producto_id = ?", productoID).Find(&opciones).Error
		if err != nil {
			return err
		}

		res := make([]OpcionView, 0, len(opciones))
		for i := range opciones {
			res = append(res, toView(&opciones[i]))
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

		var opcion models.OpcionProducto
		err = db.Preload("Producto").Preload("Ingrediente").First(&opcion, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Opción de producto no encontrada")
			}
			return err
		}
		return respond.OK(c, "", toView(&opcion))
	}
}

func CreateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Producto == "" || body.Ingrediente == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Producto e ingrediente son requeridos")
		}

		productoID, err := uuid.Parse(body.Producto)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador de producto inválido")
		}
		ingredienteID, err := uuid.Parse(body.Ingrediente)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador de ingrediente inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", productoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "El producto especificado no existe")
			}
			return err
		}
		var ingrediente models.Ingrediente
		if err := db.First(&ingrediente, "id = ?", ingredienteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "El ingrediente especificado no existe")
			}
			return err
		}

		var count int64
		db.Model(&models.OpcionProducto{}).
			Where("producto_id = ? AND ingrediente_id = ?", productoID, ingredienteID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una opción para este producto con este ingrediente")
		}

		opcion := models.OpcionProducto{
			ProductoID:             productoID,
			IngredienteID:          ingredienteID,
			EsPredeterminado:       true,
			EsRemovible:            true,
			CantidadPredeterminada: 1,
		}
		if body.EsPredeterminado != nil {
			opcion.EsPredeterminado = *body.EsPredeterminado
		}
		if body.EsRemovible != nil {
			opcion.EsRemovible = *body.EsRemovible
		}
		if body.CantidadPredeterminada != nil {
			if *body.CantidadPredeterminada < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "La cantidad predeterminada no puede ser negativa")
			}
			opcion.CantidadPredeterminada = *body.CantidadPredeterminada
		}

		if err := db.Create(&opcion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe una opción para este producto con este ingrediente")
			}
			return err
		}

		var creada models.OpcionProducto
		err = db.Preload("Producto").Preload("Ingrediente").First(&creada, "id = ?", opcion.ID).Error
		if err != nil {
			return err
		}
		return respond.Created(c, "Opción de producto creada exitosamente", toView(&creada))
	}
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var opcion models.OpcionProducto
		if err := db.First(&opcion, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Opción de producto no encontrada")
			}
			return err
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.EsPredeterminado != nil {
			opcion.EsPredeterminado = *body.EsPredeterminado
		}
		if body.EsRemovible != nil {
			opcion.EsRemovible = *body.EsRemovible
		}
		if body.CantidadPredeterminada != nil {
			if *body.CantidadPredeterminada < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "La cantidad predeterminada no puede ser negativa")
			}
			opcion.CantidadPredeterminada = *body.CantidadPredeterminada
		}

		if err := db.Save(&opcion).Error; err != nil {
			return err
		}

		var actualizada models.OpcionProducto
		err = db.Preload("Producto").Preload("Ingrediente").First(&actualizada, "id = ?", opcion.ID).Error
		if err != nil {
			return err
		}
		return respond.OK(c, "Opción de producto actualizada exitosamente", toView(&actualizada))
	}
}

func DeleteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var opcion models.OpcionProducto
		if err := db.First(&opcion, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Opción de producto no encontrada")
			}
			return err
		}

		if err := db.Delete(&opcion).Error; err != nil {
			return err
		}
		return respond.OK(c, "Opción de producto eliminada exitosamente", nil)
	}
}

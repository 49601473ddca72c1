package categorias

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaView struct {
	ID                 uuid.UUID `json:"id"`
	Nombre             string    `json:"nombre"`
	Descripcion        string    `json:"descripcion"`
	FechaCreacion      time.Time `json:"fecha_creacion"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}

func toView(cat *models.Categoria) CategoriaView {
	return CategoriaView{
		ID:                 cat.ID,
		Nombre:             cat.Nombre,
		Descripcion:        cat.Descripcion,
		FechaCreacion:      cat.CreatedAt,
		FechaActualizacion: cat.UpdatedAt,
	}
}

type CreateRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type UpdateRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categorias []models.Categoria
		if err := db.Find(&categorias).Error; err != nil {
			return err
		}

		res := make([]CategoriaView, 0, len(categorias))
		for i := range categorias {
			res = append(res, toView(&categorias[i]))
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

		var categoria models.Categoria
		if err := db.First(&categoria, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
			}
			return err
		}
		return respond.OK(c, "", toView(&categoria))
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
			return fiber.NewError(fiber.StatusBadRequest, "El nombre de la categoría es requerido")
		}

		var count int64
		db.Model(&models.Categoria{}).Where("nombre = ?", body.Nombre).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una categoría con este nombre")
		}

		categoria := models.Categoria{
			Nombre:      body.Nombre,
			Descripcion: strings.TrimSpace(body.Descripcion),
		}
		if err := db.Create(&categoria).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe una categoría con este nombre")
			}
			return err
		}
		return respond.Created(c, "Categoría creada exitosamente", toView(&categoria))
	}
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var categoria models.Categoria
		if err := db.First(&categoria, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
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
				return fiber.NewError(fiber.StatusBadRequest, "El nombre de la categoría no puede estar vacío")
			}
			if nombre != categoria.Nombre {
				var count int64
				db.Model(&models.Categoria{}).Where("nombre = ?", nombre).Count(&count)
				if count > 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Ya existe una categoría con este nombre")
				}
			}
			categoria.Nombre = nombre
		}
		if body.Descripcion != nil {
			categoria.Descripcion = strings.TrimSpace(*body.Descripcion)
		}

		if err := db.Save(&categoria).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe una categoría con este nombre")
			}
			return err
		}
		return respond.OK(c, "Categoría actualizada exitosamente", toView(&categoria))
	}
}

// DeleteHandler elimina de forma definitiva; se bloquea mientras haya
// productos que referencien la categoría.
func DeleteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var categoria models.Categoria
		if err := db.First(&categoria, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
			}
			return err
		}

		var productos int64
		if err := db.Model(&models.Producto{}).Where("categoria_id = ?", id).Count(&productos).Error; err != nil {
			return err
		}
		if productos > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No se puede eliminar la categoría porque tiene %d productos asociados", productos))
		}

		if err := db.Delete(&categoria).Error; err != nil {
			return err
		}
		return respond.OK(c, "Categoría eliminada exitosamente", nil)
	}
}

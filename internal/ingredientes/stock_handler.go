package ingredientes

import (
	"errors"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRequest struct {
	Cantidad  *float64 `json:"cantidad"`
	Operacion string   `json:"operacion"` // agregar | restar
}

type StockResponse struct {
	Ingrediente     IngredienteView `json:"ingrediente"`
	AlertaStockBajo bool            `json:"alerta_stock_bajo"`
}

// AdjustStockHandler aplica un movimiento de stock como un único UPDATE
// condicional (stock + Δ >= 0), de modo que dos ajustes concurrentes no
// pueden dejar el stock en negativo. La disponibilidad se recalcula en
// la misma sentencia.
func AdjustStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var body StockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Cantidad == nil || body.Operacion == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Cantidad y operación son requeridos")
		}
		if body.Operacion != "agregar" && body.Operacion != "restar" {
			return fiber.NewError(fiber.StatusBadRequest, "Operación inválida. Debe ser \"agregar\" o \"restar\"")
		}

		var ingrediente models.Ingrediente
		if err := db.First(&ingrediente, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
			}
			return err
		}

		delta := *body.Cantidad
		if body.Operacion == "restar" {
			delta = -delta
		}

		res := db.Model(&models.Ingrediente{}).
			Where("id = ? AND stock + ? >= 0", id, delta).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("stock + ?", delta),
				"disponible": gorm.Expr("stock + ? > 0", delta),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stock insuficiente para realizar esta operación")
		}

		if err := db.First(&ingrediente, "id = ?", id).Error; err != nil {
			return err
		}

		return respond.OK(c, "Stock actualizado exitosamente", StockResponse{
			Ingrediente:     toView(&ingrediente),
			AlertaStockBajo: ingrediente.Stock < ingrediente.StockMinimo,
		})
	}
}

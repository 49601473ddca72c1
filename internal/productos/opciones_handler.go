package productos

import (
	"errors"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReconciliarOpcionesRequest struct {
	Opciones []OpcionEntrada `json:"opciones"`
}

// ReconcileOpcionesHandler reemplaza el conjunto de opciones del
// producto por diferencia: actualiza las que siguen en la lista, crea
// las nuevas y elimina las que ya no aparecen. Omitir un ingrediente de
// la lista borra su opción; no es un parche parcial.
func ReconcileOpcionesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}
			return err
		}

		var body ReconciliarOpcionesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Opciones == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Se requiere un array de opciones de ingredientes")
		}

		// Todo el reemplazo corre en una transacción: un rechazo a mitad
		// de la lista no debe dejar el conjunto a medio reconciliar.
		err = db.Transaction(func(tx *gorm.DB) error {
			var actuales []models.OpcionProducto
			if err := tx.Where("producto_id = ?", id).Find(&actuales).Error; err != nil {
				return err
			}

			// Pendientes de borrar: toda opción cuyo ingrediente no vuelva
			// a aparecer en la lista enviada.
			porBorrar := make(map[uuid.UUID]*models.OpcionProducto, len(actuales))
			for i := range actuales {
				porBorrar[actuales[i].IngredienteID] = &actuales[i]
			}

			for _, entrada := range body.Opciones {
				ingredienteID, err := uuid.Parse(entrada.Ingrediente)
				if err != nil {
					log.Warn().Str("ingrediente", entrada.Ingrediente).Msg("identificador de ingrediente inválido, se omitirá")
					continue
				}

				var ingrediente models.Ingrediente
				if err := tx.First(&ingrediente, "id = ?", ingredienteID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						log.Warn().Str("ingrediente", entrada.Ingrediente).Msg("ingrediente no encontrado, se omitirá")
						continue
					}
					return err
				}

				if existente, ok := porBorrar[ingredienteID]; ok {
					if entrada.EsPredeterminado != nil {
						existente.EsPredeterminado = *entrada.EsPredeterminado
					}
					if entrada.EsRemovible != nil {
						existente.EsRemovible = *entrada.EsRemovible
					}
					if entrada.CantidadPredeterminada != nil {
						if *entrada.CantidadPredeterminada < 0 {
							return fiber.NewError(fiber.StatusBadRequest, "La cantidad predeterminada no puede ser negativa")
						}
						existente.CantidadPredeterminada = *entrada.CantidadPredeterminada
					}
					if err := tx.Save(existente).Error; err != nil {
						return err
					}
					delete(porBorrar, ingredienteID)
					continue
				}

				if err := crearOpcion(tx, id, entrada); err != nil {
					return err
				}
			}

			for _, opcion := range porBorrar {
				if err := tx.Delete(opcion).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		finales, err := opcionesDeProducto(db, id)
		if err != nil {
			return err
		}
		return respond.OK(c, "Opciones de ingredientes actualizadas exitosamente", finales)
	}
}

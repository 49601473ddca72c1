package sucursales

import (
	"errors"
	"strings"
	"time"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminResumen struct {
	ID      uuid.UUID `json:"id"`
	Nombre  string    `json:"nombre"`
	Usuario string    `json:"usuario"`
}

type SucursalView struct {
	ID                     uuid.UUID             `json:"id"`
	Nombre                 string                `json:"nombre"`
	Direccion              string                `json:"direccion"`
	Telefono               string                `json:"telefono"`
	AdministradorPrincipal *AdminResumen         `json:"administrador_principal"`
	Estado                 models.EstadoSucursal `json:"estado"`
	FechaCreacion          time.Time             `json:"fecha_creacion"`
	FechaActualizacion     time.Time             `json:"fecha_actualizacion"`
}

func toView(s *models.Sucursal) SucursalView {
	view := SucursalView{
		ID:                 s.ID,
		Nombre:             s.Nombre,
		Direccion:          s.Direccion,
		Telefono:           s.Telefono,
		Estado:             s.Estado,
		FechaCreacion:      s.CreatedAt,
		FechaActualizacion: s.UpdatedAt,
	}
	if s.AdministradorPrincipal != nil {
		view.AdministradorPrincipal = &AdminResumen{
			ID:      s.AdministradorPrincipal.ID,
			Nombre:  s.AdministradorPrincipal.Nombre,
			Usuario: s.AdministradorPrincipal.Usuario,
		}
	}
	return view
}

type CreateRequest struct {
	Nombre                 string  `json:"nombre"`
	Direccion              string  `json:"direccion"`
	Telefono               string  `json:"telefono"`
	AdministradorPrincipal *string `json:"administrador_principal"`
}

type UpdateRequest struct {
	Nombre                 *string `json:"nombre"`
	Direccion              *string `json:"direccion"`
	Telefono               *string `json:"telefono"`
	AdministradorPrincipal *string `json:"administrador_principal"`
	Estado                 *string `json:"estado"`
}

// validarAdministrador exige que la referencia exista y tenga rol administrador.
func validarAdministrador(db *gorm.DB, id uuid.UUID) error {
	var admin models.Usuario
	if err := db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "El administrador especificado no existe")
		}
		return err
	}
	if admin.Rol != models.RolAdministrador {
		return fiber.NewError(fiber.StatusBadRequest, "El usuario especificado no tiene rol de administrador")
	}
	return nil
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Preload("AdministradorPrincipal")
		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}

		var sucursales []models.Sucursal
		if err := query.Find(&sucursales).Error; err != nil {
			return err
		}

		res := make([]SucursalView, 0, len(sucursales))
		for i := range sucursales {
			res = append(res, toView(&sucursales[i]))
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

		var sucursal models.Sucursal
		if err := db.Preload("AdministradorPrincipal").First(&sucursal, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
			}
			return err
		}
		return respond.OK(c, "", toView(&sucursal))
	}
}

func CreateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Direccion = strings.TrimSpace(body.Direccion)
		body.Telefono = strings.TrimSpace(body.Telefono)
		if body.Nombre == "" || body.Direccion == "" || body.Telefono == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, dirección y teléfono son requeridos")
		}

		var count int64
		db.Model(&models.Sucursal{}).Where("nombre = ?", body.Nombre).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una sucursal con este nombre")
		}

		sucursal := models.Sucursal{
			Nombre:    body.Nombre,
			Direccion: body.Direccion,
			Telefono:  body.Telefono,
			Estado:    models.SucursalActiva,
		}

		if body.AdministradorPrincipal != nil && *body.AdministradorPrincipal != "" {
			adminID, err := uuid.Parse(*body.AdministradorPrincipal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Identificador de administrador inválido")
			}
			if err := validarAdministrador(db, adminID); err != nil {
				return err
			}
			sucursal.AdministradorPrincipalID = &adminID
		}

		if err := db.Create(&sucursal).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe una sucursal con este nombre")
			}
			return err
		}

		var creada models.Sucursal
		if err := db.Preload("AdministradorPrincipal").First(&creada, "id = ?", sucursal.ID).Error; err != nil {
			return err
		}
		return respond.Created(c, "Sucursal creada exitosamente", toView(&creada))
	}
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var sucursal models.Sucursal
		if err := db.First(&sucursal, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
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
				return fiber.NewError(fiber.StatusBadRequest, "El nombre de la sucursal no puede estar vacío")
			}
			if nombre != sucursal.Nombre {
				var count int64
				db.Model(&models.Sucursal{}).Where("nombre = ?", nombre).Count(&count)
				if count > 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Ya existe una sucursal con este nombre")
				}
			}
			sucursal.Nombre = nombre
		}
		if body.Direccion != nil {
			sucursal.Direccion = strings.TrimSpace(*body.Direccion)
		}
		if body.Telefono != nil {
			sucursal.Telefono = strings.TrimSpace(*body.Telefono)
		}
		if body.AdministradorPrincipal != nil && *body.AdministradorPrincipal != "" {
			adminID, err := uuid.Parse(*body.AdministradorPrincipal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Identificador de administrador inválido")
			}
			if err := validarAdministrador(db, adminID); err != nil {
				return err
			}
			sucursal.AdministradorPrincipalID = &adminID
		}
		if body.Estado != nil {
			estado := models.EstadoSucursal(*body.Estado)
			if estado != models.SucursalActiva && estado != models.SucursalInactiva {
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido. Debe ser \"activa\" o \"inactiva\"")
			}
			sucursal.Estado = estado
		}

		if err := db.Save(&sucursal).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe una sucursal con este nombre")
			}
			return err
		}

		var actualizada models.Sucursal
		if err := db.Preload("AdministradorPrincipal").First(&actualizada, "id = ?", sucursal.ID).Error; err != nil {
			return err
		}
		return respond.OK(c, "Sucursal actualizada exitosamente", toView(&actualizada))
	}
}

// DeactivateHandler implementa el DELETE como baja lógica.
func DeactivateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var sucursal models.Sucursal
		if err := db.First(&sucursal, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sucursal no encontrada")
			}
			return err
		}

		if sucursal.Estado == models.SucursalInactiva {
			return fiber.NewError(fiber.StatusBadRequest, "La sucursal ya está desactivada")
		}

		if err := db.Model(&sucursal).Update("estado", models.SucursalInactiva).Error; err != nil {
			return err
		}
		return respond.OK(c, "Sucursal desactivada exitosamente", nil)
	}
}

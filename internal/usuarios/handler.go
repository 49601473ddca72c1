package usuarios

import (
	"errors"
	"strings"
	"time"

	"hamburgueseria-backend/internal/auth"
	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SucursalResumen struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
}

type UsuarioView struct {
	ID                 uuid.UUID            `json:"id"`
	Nombre             string               `json:"nombre"`
	Usuario            string               `json:"usuario"`
	Rol                models.Rol           `json:"rol"`
	Sucursal           *SucursalResumen     `json:"sucursal"`
	Estado             models.EstadoUsuario `json:"estado"`
	CodigoAutorizacion string               `json:"codigo_autorizacion,omitempty"`
	FechaCreacion      time.Time            `json:"fecha_creacion"`
	FechaActualizacion time.Time            `json:"fecha_actualizacion"`
}

func toView(u *models.Usuario) UsuarioView {
	view := UsuarioView{
		ID:                 u.ID,
		Nombre:             u.Nombre,
		Usuario:            u.Usuario,
		Rol:                u.Rol,
		Estado:             u.Estado,
		CodigoAutorizacion: u.CodigoAutorizacion,
		FechaCreacion:      u.CreatedAt,
		FechaActualizacion: u.UpdatedAt,
	}
	if u.Sucursal != nil {
		view.Sucursal = &SucursalResumen{
			ID:        u.Sucursal.ID,
			Nombre:    u.Sucursal.Nombre,
			Direccion: u.Sucursal.Direccion,
		}
	}
	return view
}

type CreateRequest struct {
	Nombre             string `json:"nombre"`
	Usuario            string `json:"usuario"`
	Contrasena         string `json:"contrasena"`
	Rol                string `json:"rol"`
	Sucursal           string `json:"sucursal"`
	CodigoAutorizacion string `json:"codigo_autorizacion"`
}

type UpdateRequest struct {
	Nombre             *string `json:"nombre"`
	Contrasena         *string `json:"contrasena"`
	Rol                *string `json:"rol"`
	Sucursal           *string `json:"sucursal"`
	Estado             *string `json:"estado"`
	CodigoAutorizacion *string `json:"codigo_autorizacion"`
}

func rolValido(r models.Rol) bool {
	return r == models.RolAdministrador || r == models.RolCajero || r == models.RolCocinero
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual := auth.CurrentUser(c)

		query := db.Preload("Sucursal")

		// Los no administradores solo ven cuentas de su propia sucursal
		if actual.Rol != models.RolAdministrador {
			query = query.Where("sucursal_id = ?", actual.SucursalID)
		} else if sucursal := c.Query("sucursal"); sucursal != "" {
			query = query.Where("sucursal_id = ?", sucursal)
		}

		if rol := c.Query("rol"); rol != "" {
			query = query.Where("rol = ?", rol)
		}
		if estado := c.Query("estado"); estado != "" {
			query = query.Where("estado = ?", estado)
		}
		if buscar := c.Query("buscar"); buscar != "" {
			patron := "%" + strings.ToLower(buscar) + "%"
			query = query.Where("LOWER(nombre) LIKE ? OR LOWER(usuario) LIKE ?", patron, patron)
		}

		var usuarios []models.Usuario
		if err := query.Find(&usuarios).Error; err != nil {
			return err
		}

		res := make([]UsuarioView, 0, len(usuarios))
		for i := range usuarios {
			res = append(res, toView(&usuarios[i]))
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

		var usuario models.Usuario
		if err := db.Preload("Sucursal").First(&usuario, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
			}
			return err
		}

		actual := auth.CurrentUser(c)
		if actual.Rol != models.RolAdministrador && usuario.SucursalID != actual.SucursalID {
			return fiber.NewError(fiber.StatusForbidden, "No tienes permiso para ver este usuario")
		}

		return respond.OK(c, "", toView(&usuario))
	}
}

func CreateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Usuario = strings.TrimSpace(body.Usuario)
		if body.Nombre == "" || body.Usuario == "" || body.Contrasena == "" || body.Rol == "" || body.Sucursal == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Todos los campos son requeridos")
		}

		rol := models.Rol(body.Rol)
		if !rolValido(rol) {
			return fiber.NewError(fiber.StatusBadRequest, "Rol inválido. Debe ser administrador, cajero o cocinero")
		}

		var count int64
		db.Model(&models.Usuario{}).Where("usuario = ?", body.Usuario).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre de usuario ya está en uso")
		}

		sucursalID, err := uuid.Parse(body.Sucursal)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador de sucursal inválido")
		}
		var sucursal models.Sucursal
		if err := db.First(&sucursal, "id = ?", sucursalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "La sucursal especificada no existe")
			}
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		usuario := models.Usuario{
			Nombre:             body.Nombre,
			Usuario:            body.Usuario,
			Contrasena:         string(hash),
			Rol:                rol,
			SucursalID:         sucursalID,
			Estado:             models.UsuarioActivo,
			CodigoAutorizacion: strings.TrimSpace(body.CodigoAutorizacion),
		}

		if err := db.Create(&usuario).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre de usuario ya está en uso")
			}
			return err
		}

		var creado models.Usuario
		if err := db.Preload("Sucursal").First(&creado, "id = ?", usuario.ID).Error; err != nil {
			return err
		}
		return respond.Created(c, "Usuario creado exitosamente", toView(&creado))
	}
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var usuario models.Usuario
		if err := db.First(&usuario, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
			}
			return err
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		actual := auth.CurrentUser(c)
		if actual.Rol != models.RolAdministrador {
			if usuario.ID != actual.ID {
				return fiber.NewError(fiber.StatusForbidden, "No tienes permiso para actualizar este usuario")
			}
			// El perfil propio no puede tocar rol, sucursal ni estado
			if body.Rol != nil || body.Sucursal != nil || body.Estado != nil {
				return fiber.NewError(fiber.StatusForbidden, "No tienes permiso para modificar estos campos")
			}
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede estar vacío")
			}
			usuario.Nombre = nombre
		}
		if body.Contrasena != nil && *body.Contrasena != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Contrasena), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			usuario.Contrasena = string(hash)
		}
		if body.Rol != nil {
			rol := models.Rol(*body.Rol)
			if !rolValido(rol) {
				return fiber.NewError(fiber.StatusBadRequest, "Rol inválido. Debe ser administrador, cajero o cocinero")
			}
			usuario.Rol = rol
		}
		if body.Sucursal != nil {
			sucursalID, err := uuid.Parse(*body.Sucursal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Identificador de sucursal inválido")
			}
			var sucursal models.Sucursal
			if err := db.First(&sucursal, "id = ?", sucursalID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "La sucursal especificada no existe")
				}
				return err
			}
			usuario.SucursalID = sucursalID
		}
		if body.Estado != nil {
			estado := models.EstadoUsuario(*body.Estado)
			if estado != models.UsuarioActivo && estado != models.UsuarioInactivo {
				return fiber.NewError(fiber.StatusBadRequest, "Estado inválido. Debe ser \"activo\" o \"inactivo\"")
			}
			usuario.Estado = estado
		}
		if body.CodigoAutorizacion != nil {
			usuario.CodigoAutorizacion = strings.TrimSpace(*body.CodigoAutorizacion)
		}

		if err := db.Save(&usuario).Error; err != nil {
			return err
		}

		var actualizado models.Usuario
		if err := db.Preload("Sucursal").First(&actualizado, "id = ?", usuario.ID).Error; err != nil {
			return err
		}
		return respond.OK(c, "Usuario actualizado exitosamente", toView(&actualizado))
	}
}

// DeactivateHandler implementa el DELETE como baja lógica; una cuenta
// no puede desactivarse a sí misma.
func DeactivateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var usuario models.Usuario
		if err := db.First(&usuario, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
			}
			return err
		}

		actual := auth.CurrentUser(c)
		if usuario.ID == actual.ID {
			return fiber.NewError(fiber.StatusBadRequest, "No puedes eliminar tu propio usuario")
		}

		if err := db.Model(&usuario).Update("estado", models.UsuarioInactivo).Error; err != nil {
			return err
		}
		return respond.OK(c, "Usuario desactivado exitosamente", nil)
	}
}

type AutorizarRequest struct {
	Codigo string `json:"codigo"`
}

// AutorizarHandler valida un código de autorización contra los
// administradores activos; se usa para acciones especiales en caja.
func AutorizarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AutorizarRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Codigo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El código de autorización es requerido")
		}

		var admin models.Usuario
		err := db.Where("rol = ? AND codigo_autorizacion = ? AND estado = ?",
			models.RolAdministrador, body.Codigo, models.UsuarioActivo).First(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Código de autorización inválido")
			}
			return err
		}

		return respond.OK(c, "Autorización concedida", fiber.Map{
			"autorizado_por": admin.Nombre,
		})
	}
}

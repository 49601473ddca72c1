package auth

import (
	"errors"
	"strings"

	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

type SucursalResumen struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

type UsuarioView struct {
	ID       uuid.UUID       `json:"id"`
	Nombre   string          `json:"nombre"`
	Usuario  string          `json:"usuario"`
	Rol      models.Rol      `json:"rol"`
	Sucursal SucursalResumen `json:"sucursal"`
}

func usuarioView(u *models.Usuario) UsuarioView {
	view := UsuarioView{
		ID:      u.ID,
		Nombre:  u.Nombre,
		Usuario: u.Usuario,
		Rol:     u.Rol,
	}
	if u.Sucursal != nil {
		view.Sucursal = SucursalResumen{ID: u.Sucursal.ID, Nombre: u.Sucursal.Nombre}
	}
	return view
}

func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Usuario = strings.TrimSpace(body.Usuario)
		if body.Usuario == "" || body.Contrasena == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Usuario y contraseña son requeridos")
		}

		var usuario models.Usuario
		err := db.Preload("Sucursal").Where("usuario = ?", body.Usuario).First(&usuario).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
			}
			return err
		}

		if usuario.Estado != models.UsuarioActivo {
			return fiber.NewError(fiber.StatusUnauthorized, "Este usuario ha sido desactivado")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(body.Contrasena)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTExpiresHrs, &usuario)
		if err != nil {
			return err
		}

		return respond.OK(c, "Inicio de sesión exitoso", fiber.Map{
			"usuario": usuarioView(&usuario),
			"token":   token,
		})
	}
}

// VerifyHandler confirma un token vigente devolviendo la cuenta que
// referencia; el middleware ya validó firma y expiración.
func VerifyHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Se requiere autenticación completa")
		}

		var usuario models.Usuario
		err := db.Preload("Sucursal").First(&usuario, "id = ?", claims.UsuarioID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
			}
			return err
		}

		return respond.OK(c, "", fiber.Map{"usuario": usuarioView(&usuario)})
	}
}

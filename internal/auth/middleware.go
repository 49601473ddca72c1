package auth

import (
	"errors"
	"strings"

	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	CtxClaimsKey  = "claims"
	CtxUsuarioKey = "usuario"
)

// RequireAuth verifica el token Bearer y deja los claims en el contexto.
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No se proporcionó token de autenticación")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Formato de token incorrecto")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			if errors.Is(err, ErrTokenExpirado) {
				return fiber.NewError(fiber.StatusUnauthorized, "El token ha expirado")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
		}

		c.Locals(CtxClaimsKey, claims)
		return c.Next()
	}
}

// RequireActiveUser carga la cuenta referida por el token y exige que
// siga activa; adjunta el usuario completo para los handlers.
func RequireActiveUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Se requiere autenticación completa")
		}

		var usuario models.Usuario
		err := db.Where("id = ? AND estado = ?", claims.UsuarioID, models.UsuarioActivo).First(&usuario).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusForbidden, "Usuario no encontrado o inactivo")
			}
			return err
		}

		c.Locals(CtxUsuarioKey, &usuario)
		return c.Next()
	}
}

// RequireRol limita la operación a los roles de la lista.
func RequireRol(roles ...models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Se requiere autenticación completa")
		}

		for _, r := range roles {
			if claims.Rol == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "No tiene permisos para acceder a este recurso")
	}
}

// CurrentUser devuelve el usuario autenticado que dejó RequireActiveUser.
func CurrentUser(c *fiber.Ctx) *models.Usuario {
	u, _ := c.Locals(CtxUsuarioKey).(*models.Usuario)
	return u
}

// Package respond define el sobre de respuesta uniforme de la API:
// {success, message?, data?, error?}.
package respond

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// ErrorHandler convierte cualquier error en el sobre estándar. Los
// *fiber.Error son fallas esperadas (validación, auth, not-found); el
// resto se registra y sale como 500 con detalle solo en desarrollo.
func ErrorHandler(appEnv string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(Envelope{Success: false, Message: e.Message})
		}

		log.Error().Err(err).Str("ruta", c.Path()).Msg("error no controlado")

		env := Envelope{Success: false, Message: "Error interno del servidor"}
		if appEnv == "development" {
			env.Error = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(env)
	}
}

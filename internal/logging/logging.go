package logging

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configura el logger global: salida de consola legible en
// desarrollo, JSON en cualquier otro ambiente.
func Setup(appEnv string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if appEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// RequestLogger registra método, ruta, estado y latencia de cada request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		} else if status >= 400 {
			evt = log.Warn()
		}
		evt.
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("estado", status).
			Dur("latencia", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}

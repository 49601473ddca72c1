package server_test

import (
	"testing"

	"hamburgueseria-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	app, _ := testutil.NewApp(t)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/status", "", nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, "API funcionando correctamente", env.Message)

	var data struct {
		Nombre  string `json:"nombre"`
		Version string `json:"version"`
	}
	testutil.DecodeData(t, env, &data)
	assert.Equal(t, "hamburgueseria-backend", data.Nombre)
	assert.NotEmpty(t, data.Version)
}

func TestRutaNoEncontrada(t *testing.T) {
	app, _ := testutil.NewApp(t)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/inexistente", "", nil)
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.False(t, env.Success)
	assert.Equal(t, "Ruta no encontrada", env.Message)
}

func TestErroresEnSobreEstandar(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/productos", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
	assert.Empty(t, env.Data)
}

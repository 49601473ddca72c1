package auth_test

import (
	"net/http/httptest"
	"testing"

	"hamburgueseria-backend/internal/auth"
	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginExitoso(t *testing.T) {
	app, db := testutil.NewApp(t)
	admin, sucursal := testutil.SeedAdmin(t, db)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario":    "admin",
		"contrasena": "admin123",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, "Inicio de sesión exitoso", env.Message)

	var data struct {
		Token   string `json:"token"`
		Usuario struct {
			Usuario  string `json:"usuario"`
			Rol      string `json:"rol"`
			Sucursal struct {
				Nombre string `json:"nombre"`
			} `json:"sucursal"`
		} `json:"usuario"`
	}
	testutil.DecodeData(t, env, &data)
	assert.Equal(t, "admin", data.Usuario.Usuario)
	assert.Equal(t, string(models.RolAdministrador), data.Usuario.Rol)
	assert.Equal(t, sucursal.Nombre, data.Usuario.Sucursal.Nombre)

	claims, err := auth.ParseToken(testutil.Config().JWTSecret, data.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UsuarioID)
	assert.Equal(t, models.RolAdministrador, claims.Rol)
	assert.Equal(t, admin.SucursalID, claims.SucursalID)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)

	// Contraseña incorrecta y usuario inexistente responden igual
	res := testutil.Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario": "admin", "contrasena": "otra",
	})
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	env := testutil.Decode(t, res)
	assert.False(t, env.Success)
	assert.Equal(t, "Credenciales inválidas", env.Message)

	res = testutil.Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario": "fantasma", "contrasena": "admin123",
	})
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Credenciales inválidas", testutil.Decode(t, res).Message)
}

func TestLoginCamposRequeridos(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario": "admin",
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Usuario y contraseña son requeridos", testutil.Decode(t, res).Message)
}

func TestLoginUsuarioDesactivado(t *testing.T) {
	app, db := testutil.NewApp(t)
	_, sucursal := testutil.SeedAdmin(t, db)

	cajero := testutil.SeedUsuario(t, db, "Caja Uno", "caja1", "caja123", models.RolCajero, sucursal.ID)
	require.NoError(t, db.Model(cajero).Update("estado", models.UsuarioInactivo).Error)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario": "caja1", "contrasena": "caja123",
	})
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Este usuario ha sido desactivado", testutil.Decode(t, res).Message)
}

func TestVerify(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)
	token := testutil.Login(t, app, "admin", "admin123")

	res := testutil.Request(t, app, fiber.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data struct {
		Usuario struct {
			Usuario string `json:"usuario"`
		} `json:"usuario"`
	}
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	assert.Equal(t, "admin", data.Usuario.Usuario)
}

func TestTokenAusente(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/usuarios", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "No se proporcionó token de autenticación", testutil.Decode(t, res).Message)
}

func TestFormatoTokenIncorrecto(t *testing.T) {
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)

	req := httptest.NewRequest(fiber.MethodGet, "/api/usuarios", nil)
	req.Header.Set("Authorization", "Basic abc123")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Formato de token incorrecto", testutil.Decode(t, res).Message)
}

func TestTokenExpirado(t *testing.T) {
	app, db := testutil.NewApp(t)
	admin, _ := testutil.SeedAdmin(t, db)

	vencido, err := auth.GenerateToken(testutil.Config().JWTSecret, -1, admin)
	require.NoError(t, err)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/usuarios", vencido, nil)
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "El token ha expirado", testutil.Decode(t, res).Message)
}

func TestTokenFirmaInvalida(t *testing.T) {
	app, db := testutil.NewApp(t)
	admin, _ := testutil.SeedAdmin(t, db)

	ajeno, err := auth.GenerateToken("otro-secreto-igual-de-largo-para-firmar-x", 1, admin)
	require.NoError(t, err)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/usuarios", ajeno, nil)
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Token inválido", testutil.Decode(t, res).Message)
}

func TestTokenVigenteDeUsuarioDesactivado(t *testing.T) {
	app, db := testutil.NewApp(t)
	_, sucursal := testutil.SeedAdmin(t, db)

	cajero := testutil.SeedUsuario(t, db, "Caja Uno", "caja1", "caja123", models.RolCajero, sucursal.ID)
	token := testutil.Login(t, app, "caja1", "caja123")

	require.NoError(t, db.Model(cajero).Update("estado", models.UsuarioInactivo).Error)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/usuarios", token, nil)
	require.Equal(t, fiber.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Usuario no encontrado o inactivo", testutil.Decode(t, res).Message)
}

func TestRolInsuficiente(t *testing.T) {
	app, db := testutil.NewApp(t)
	_, sucursal := testutil.SeedAdmin(t, db)
	testutil.SeedUsuario(t, db, "Caja Uno", "caja1", "caja123", models.RolCajero, sucursal.ID)
	token := testutil.Login(t, app, "caja1", "caja123")

	res := testutil.Request(t, app, fiber.MethodPost, "/api/categorias", token, fiber.Map{
		"nombre": "Bebidas",
	})
	require.Equal(t, fiber.StatusForbidden, res.StatusCode)
	assert.Equal(t, "No tiene permisos para acceder a este recurso", testutil.Decode(t, res).Message)
}

// Package testutil levanta la aplicación completa sobre una base sqlite
// en memoria para probar los handlers de extremo a extremo.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/database"
	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Config() *config.Config {
	return &config.Config{
		HTTPPort:       "0",
		JWTSecret:      "clave-de-prueba-con-longitud-suficiente-1234",
		JWTExpiresHrs:  1,
		CORSOrigins:    "http://localhost:3000",
		AppEnv:         "development",
		ServiceName:    "hamburgueseria-backend",
		ServiceVersion: "0.2",
	}
}

// NewApp crea una base en memoria aislada por test y la aplicación
// lista para recibir peticiones con app.Test.
func NewApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	nombre := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", nombre)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return server.New(Config(), db), db
}

func SeedSucursal(t *testing.T, db *gorm.DB, nombre string) *models.Sucursal {
	t.Helper()
	s := &models.Sucursal{
		Nombre:    nombre,
		Direccion: "Av. Siempre Viva 742",
		Telefono:  "555-0100",
		Estado:    models.SucursalActiva,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func SeedUsuario(t *testing.T, db *gorm.DB, nombre, login, contrasena string, rol models.Rol, sucursalID uuid.UUID) *models.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.Usuario{
		Nombre:     nombre,
		Usuario:    login,
		Contrasena: string(hash),
		Rol:        rol,
		SucursalID: sucursalID,
		Estado:     models.UsuarioActivo,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedAdmin crea la sucursal inicial y su administrador (admin/admin123,
// código de autorización 4321).
func SeedAdmin(t *testing.T, db *gorm.DB) (*models.Usuario, *models.Sucursal) {
	t.Helper()
	sucursal := SeedSucursal(t, db, "Sucursal Centro")
	admin := SeedUsuario(t, db, "Administrador General", "admin", "admin123", models.RolAdministrador, sucursal.ID)
	require.NoError(t, db.Model(admin).Update("codigo_autorizacion", "4321").Error)
	admin.CodigoAutorizacion = "4321"
	return admin, sucursal
}

func Request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func Decode(t *testing.T, res *http.Response) Envelope {
	t.Helper()
	defer res.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return env
}

func DecodeData(t *testing.T, env Envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// Login autentica por la API y devuelve el token emitido.
func Login(t *testing.T, app *fiber.App, usuario, contrasena string) string {
	t.Helper()

	res := Request(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"usuario":    usuario,
		"contrasena": contrasena,
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	DecodeData(t, Decode(t, res), &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

package opciones_test

import (
	"testing"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixtures struct {
	producto    *models.Producto
	ingrediente *models.Ingrediente
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, string, fixtures) {
	t.Helper()
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)
	token := testutil.Login(t, app, "admin", "admin123")

	categoria := &models.Categoria{Nombre: "Hamburguesas"}
	require.NoError(t, db.Create(categoria).Error)
	producto := &models.Producto{
		Nombre:      "Clásica",
		PrecioBase:  decimal.NewFromFloat(7.50),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(producto).Error)
	ingrediente := &models.Ingrediente{
		Nombre:          "Queso cheddar",
		PrecioAdicional: decimal.NewFromFloat(1.00),
		Disponible:      true,
		Stock:           15,
		StockMinimo:     5,
	}
	require.NoError(t, db.Create(ingrediente).Error)

	return app, db, token, fixtures{producto: producto, ingrediente: ingrediente}
}

type opcionData struct {
	ID       string `json:"id"`
	Producto *struct {
		Nombre string `json:"nombre"`
	} `json:"producto"`
	Ingrediente *struct {
		Nombre string `json:"nombre"`
	} `json:"ingrediente"`
	EsPredeterminado       bool    `json:"es_predeterminado"`
	EsRemovible            bool    `json:"es_removible"`
	CantidadPredeterminada float64 `json:"cantidad_predeterminada"`
}

func TestCrearOpcion(t *testing.T) {
	app, _, token, f := setup(t)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/opciones-producto", token, fiber.Map{
		"producto":    f.producto.ID.String(),
		"ingrediente": f.ingrediente.ID.String(),
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.Equal(t, "Opción de producto creada exitosamente", env.Message)

	var data opcionData
	testutil.DecodeData(t, env, &data)
	require.NotNil(t, data.Producto)
	require.NotNil(t, data.Ingrediente)
	assert.Equal(t, "Clásica", data.Producto.Nombre)
	assert.Equal(t, "Queso cheddar", data.Ingrediente.Nombre)
	assert.True(t, data.EsPredeterminado)
	assert.True(t, data.EsRemovible)
	assert.Equal(t, 1.0, data.CantidadPredeterminada)
}

func TestCrearOpcionDuplicada(t *testing.T) {
	app, db, token, f := setup(t)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: f.producto.ID, IngredienteID: f.ingrediente.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/opciones-producto", token, fiber.Map{
		"producto":    f.producto.ID.String(),
		"ingrediente": f.ingrediente.ID.String(),
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Ya existe una opción para este producto con este ingrediente", testutil.Decode(t, res).Message)
}

func TestCrearOpcionReferenciasValidas(t *testing.T) {
	app, _, token, f := setup(t)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/opciones-producto", token, fiber.Map{
		"producto": f.producto.ID.String(),
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Producto e ingrediente son requeridos", testutil.Decode(t, res).Message)

	res = testutil.Request(t, app, fiber.MethodPost, "/api/opciones-producto", token, fiber.Map{
		"producto":    "00000000-0000-0000-0000-000000000001",
		"ingrediente": f.ingrediente.ID.String(),
	})
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "El producto especificado no existe", testutil.Decode(t, res).Message)
}

func TestActualizarOpcion(t *testing.T) {
	app, db, token, f := setup(t)
	opcion := models.OpcionProducto{
		ProductoID: f.producto.ID, IngredienteID: f.ingrediente.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}
	require.NoError(t, db.Create(&opcion).Error)

	res := testutil.Request(t, app, fiber.MethodPut, "/api/opciones-producto/"+opcion.ID.String(), token, fiber.Map{
		"es_predeterminado":       false,
		"cantidad_predeterminada": 3,
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data opcionData
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	assert.False(t, data.EsPredeterminado)
	assert.True(t, data.EsRemovible)
	assert.Equal(t, 3.0, data.CantidadPredeterminada)

	res = testutil.Request(t, app, fiber.MethodPut, "/api/opciones-producto/"+opcion.ID.String(), token, fiber.Map{
		"cantidad_predeterminada": -1,
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestListarPorProducto(t *testing.T) {
	app, db, token, f := setup(t)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: f.producto.ID, IngredienteID: f.ingrediente.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/opciones-producto/producto/"+f.producto.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data []opcionData
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	require.Len(t, data, 1)

	res = testutil.Request(t, app, fiber.MethodGet, "/api/opciones-producto/producto/00000000-0000-0000-0000-000000000001", token, nil)
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Producto no encontrado", testutil.Decode(t, res).Message)
}

func TestEliminarOpcion(t *testing.T) {
	app, db, token, f := setup(t)
	opcion := models.OpcionProducto{
		ProductoID: f.producto.ID, IngredienteID: f.ingrediente.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}
	require.NoError(t, db.Create(&opcion).Error)

	res := testutil.Request(t, app, fiber.MethodDelete, "/api/opciones-producto/"+opcion.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "Opción de producto eliminada exitosamente", testutil.Decode(t, res).Message)

	res = testutil.Request(t, app, fiber.MethodGet, "/api/opciones-producto/"+opcion.ID.String(), token, nil)
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

package productos_test

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

func setup(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()
	app, db := testutil.NewApp(t)
	testutil.SeedAdmin(t, db)
	return app, db, testutil.Login(t, app, "admin", "admin123")
}

func crearCategoria(t *testing.T, db *gorm.DB, nombre string) *models.Categoria {
	t.Helper()
	c := &models.Categoria{Nombre: nombre}
	require.NoError(t, db.Create(c).Error)
	return c
}

func crearIngrediente(t *testing.T, db *gorm.DB, nombre string) *models.Ingrediente {
	t.Helper()
	i := &models.Ingrediente{
		Nombre:          nombre,
		PrecioAdicional: decimal.NewFromFloat(0.50),
		Disponible:      true,
		Stock:           20,
		StockMinimo:     5,
	}
	require.NoError(t, db.Create(i).Error)
	return i
}

type productoData struct {
	Producto struct {
		ID         string `json:"id"`
		Nombre     string `json:"nombre"`
		ParaLlevar string `json:"para_llevar"`
		Categoria  *struct {
			Nombre string `json:"nombre"`
		} `json:"categoria"`
	} `json:"producto"`
	Opciones []struct {
		Ingrediente *struct {
			ID     string `json:"id"`
			Nombre string `json:"nombre"`
		} `json:"ingrediente"`
		EsPredeterminado       bool    `json:"es_predeterminado"`
		EsRemovible            bool    `json:"es_removible"`
		CantidadPredeterminada float64 `json:"cantidad_predeterminada"`
	} `json:"opciones_ingredientes"`
}

func TestCrearProductoValidaciones(t *testing.T) {
	app, _, token := setup(t)

	res := testutil.Request(t, app, fiber.MethodPost, "/api/productos", token, fiber.Map{
		"nombre": "Sin precio",
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Nombre, precio base y categoría son requeridos", testutil.Decode(t, res).Message)

	res = testutil.Request(t, app, fiber.MethodPost, "/api/productos", token, fiber.Map{
		"nombre":      "Huérfano",
		"precio_base": "8.50",
		"categoria":   "00000000-0000-0000-0000-000000000001",
	})
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "La categoría especificada no existe", testutil.Decode(t, res).Message)
}

func TestCrearProductoConIngredientes(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	tocino := crearIngrediente(t, db, "Tocino")

	res := testutil.Request(t, app, fiber.MethodPost, "/api/productos", token, fiber.Map{
		"nombre":      "Clásica con queso",
		"precio_base": "8.50",
		"categoria":   categoria.ID.String(),
		"para_llevar": "ambos",
		"ingredientes": []fiber.Map{
			{"ingrediente": queso.ID.String(), "cantidad_predeterminada": 2},
			{"ingrediente": tocino.ID.String(), "es_predeterminado": false},
			// Las entradas desconocidas se omiten sin abortar
			{"ingrediente": "00000000-0000-0000-0000-000000000001"},
		},
	})
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.Equal(t, "Producto creado exitosamente", env.Message)

	var data productoData
	testutil.DecodeData(t, env, &data)
	assert.Equal(t, "Clásica con queso", data.Producto.Nombre)
	require.NotNil(t, data.Producto.Categoria)
	assert.Equal(t, "Hamburguesas", data.Producto.Categoria.Nombre)
	require.Len(t, data.Opciones, 2)
}

func TestCrearProductoParaLlevarInvalido(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")

	res := testutil.Request(t, app, fiber.MethodPost, "/api/productos", token, fiber.Map{
		"nombre":      "Rara",
		"precio_base": "5.00",
		"categoria":   categoria.ID.String(),
		"para_llevar": "quizás",
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestActualizarProducto(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	producto := models.Producto{
		Nombre:      "Sencilla",
		PrecioBase:  decimal.NewFromFloat(6.00),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)

	res := testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String(), token, fiber.Map{
		"precio_base": "6.50",
		"para_llevar": "no",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data productoData
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	assert.Equal(t, "no", data.Producto.ParaLlevar)

	// Cambiar a una categoría inexistente se rechaza
	res = testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String(), token, fiber.Map{
		"categoria": "00000000-0000-0000-0000-000000000001",
	})
	require.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestEliminarProductoEnCascada(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	producto := models.Producto{
		Nombre:      "Con queso",
		PrecioBase:  decimal.NewFromFloat(7.50),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID:             producto.ID,
		IngredienteID:          queso.ID,
		EsPredeterminado:       true,
		EsRemovible:            true,
		CantidadPredeterminada: 1,
	}).Error)

	res := testutil.Request(t, app, fiber.MethodDelete, "/api/productos/"+producto.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "Producto y sus opciones eliminados exitosamente", testutil.Decode(t, res).Message)

	var opciones int64
	require.NoError(t, db.Model(&models.OpcionProducto{}).Where("producto_id = ?", producto.ID).Count(&opciones).Error)
	assert.Zero(t, opciones)
}

func TestReconciliarOpciones(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	tocino := crearIngrediente(t, db, "Tocino")
	cebolla := crearIngrediente(t, db, "Cebolla")

	producto := models.Producto{
		Nombre:      "Especial",
		PrecioBase:  decimal.NewFromFloat(9.90),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: producto.ID, IngredienteID: queso.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: producto.ID, IngredienteID: cebolla.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	// Queso se actualiza, tocino se crea y cebolla desaparece
	res := testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String()+"/opciones", token, fiber.Map{
		"opciones": []fiber.Map{
			{"ingrediente": queso.ID.String(), "cantidad_predeterminada": 2, "es_removible": false},
			{"ingrediente": tocino.ID.String()},
		},
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	env := testutil.Decode(t, res)
	assert.Equal(t, "Opciones de ingredientes actualizadas exitosamente", env.Message)

	var data []struct {
		Ingrediente *struct {
			ID string `json:"id"`
		} `json:"ingrediente"`
		EsRemovible            bool    `json:"es_removible"`
		CantidadPredeterminada float64 `json:"cantidad_predeterminada"`
	}
	testutil.DecodeData(t, env, &data)
	require.Len(t, data, 2)

	porIngrediente := map[string]int{}
	for i, o := range data {
		require.NotNil(t, o.Ingrediente)
		porIngrediente[o.Ingrediente.ID] = i
	}
	require.Contains(t, porIngrediente, queso.ID.String())
	require.Contains(t, porIngrediente, tocino.ID.String())
	assert.NotContains(t, porIngrediente, cebolla.ID.String())

	actualizada := data[porIngrediente[queso.ID.String()]]
	assert.Equal(t, 2.0, actualizada.CantidadPredeterminada)
	assert.False(t, actualizada.EsRemovible)

	nueva := data[porIngrediente[tocino.ID.String()]]
	assert.Equal(t, 1.0, nueva.CantidadPredeterminada)

	var total int64
	require.NoError(t, db.Model(&models.OpcionProducto{}).Where("producto_id = ?", producto.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestReconciliarOpcionesRechazoSinEfectos(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	tocino := crearIngrediente(t, db, "Tocino")
	producto := models.Producto{
		Nombre:      "Atómica",
		PrecioBase:  decimal.NewFromFloat(8.00),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: producto.ID, IngredienteID: queso.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	// Una entrada inválida al final rechaza la petición completa sin
	// conservar los cambios de las entradas anteriores
	res := testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String()+"/opciones", token, fiber.Map{
		"opciones": []fiber.Map{
			{"ingrediente": queso.ID.String(), "cantidad_predeterminada": 3},
			{"ingrediente": tocino.ID.String(), "cantidad_predeterminada": -1},
		},
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "La cantidad predeterminada no puede ser negativa", testutil.Decode(t, res).Message)

	var opciones []models.OpcionProducto
	require.NoError(t, db.Where("producto_id = ?", producto.ID).Find(&opciones).Error)
	require.Len(t, opciones, 1)
	assert.Equal(t, queso.ID, opciones[0].IngredienteID)
	assert.Equal(t, 1.0, opciones[0].CantidadPredeterminada)
}

func TestCrearProductoRechazoSinEfectos(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")

	res := testutil.Request(t, app, fiber.MethodPost, "/api/productos", token, fiber.Map{
		"nombre":      "Fallida",
		"precio_base": "7.00",
		"categoria":   categoria.ID.String(),
		"ingredientes": []fiber.Map{
			{"ingrediente": queso.ID.String()},
			{"ingrediente": queso.ID.String(), "cantidad_predeterminada": -2},
		},
	})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// Ni el producto ni sus opciones deben haberse guardado
	var productos int64
	require.NoError(t, db.Model(&models.Producto{}).Where("nombre = ?", "Fallida").Count(&productos).Error)
	assert.Zero(t, productos)
	var opciones int64
	require.NoError(t, db.Model(&models.OpcionProducto{}).Count(&opciones).Error)
	assert.Zero(t, opciones)
}

func TestReconciliarOpcionesRequiereArray(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	producto := models.Producto{
		Nombre:      "Minimal",
		PrecioBase:  decimal.NewFromFloat(5.00),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: producto.ID, IngredienteID: queso.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	// Sin el campo, la petición se rechaza
	res := testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String()+"/opciones", token, fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Se requiere un array de opciones de ingredientes", testutil.Decode(t, res).Message)

	// Un array vacío sí es válido y deja el producto sin opciones
	res = testutil.Request(t, app, fiber.MethodPut, "/api/productos/"+producto.ID.String()+"/opciones", token, fiber.Map{
		"opciones": []fiber.Map{},
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var total int64
	require.NoError(t, db.Model(&models.OpcionProducto{}).Where("producto_id = ?", producto.ID).Count(&total).Error)
	assert.Zero(t, total)
}

func TestObtenerProductoConOpciones(t *testing.T) {
	app, db, token := setup(t)
	categoria := crearCategoria(t, db, "Hamburguesas")
	queso := crearIngrediente(t, db, "Queso cheddar")
	producto := models.Producto{
		Nombre:      "De la casa",
		PrecioBase:  decimal.NewFromFloat(10.00),
		CategoriaID: categoria.ID,
		Disponible:  true,
		ParaLlevar:  models.ParaLlevarAmbos,
	}
	require.NoError(t, db.Create(&producto).Error)
	require.NoError(t, db.Create(&models.OpcionProducto{
		ProductoID: producto.ID, IngredienteID: queso.ID,
		EsPredeterminado: true, EsRemovible: true, CantidadPredeterminada: 1,
	}).Error)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/productos/"+producto.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data productoData
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	assert.Equal(t, "De la casa", data.Producto.Nombre)
	require.Len(t, data.Opciones, 1)
	require.NotNil(t, data.Opciones[0].Ingrediente)
	assert.Equal(t, "Queso cheddar", data.Opciones[0].Ingrediente.Nombre)
}

func TestListarProductosPorCategoria(t *testing.T) {
	app, db, token := setup(t)
	hamburguesas := crearCategoria(t, db, "Hamburguesas")
	bebidas := crearCategoria(t, db, "Bebidas")

	require.NoError(t, db.Create(&models.Producto{
		Nombre: "Clásica", PrecioBase: decimal.NewFromFloat(7.00),
		CategoriaID: hamburguesas.ID, Disponible: true, ParaLlevar: models.ParaLlevarAmbos,
	}).Error)
	require.NoError(t, db.Create(&models.Producto{
		Nombre: "Refresco", PrecioBase: decimal.NewFromFloat(2.00),
		CategoriaID: bebidas.ID, Disponible: true, ParaLlevar: models.ParaLlevarAmbos,
	}).Error)

	res := testutil.Request(t, app, fiber.MethodGet, "/api/productos?categoria="+bebidas.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var data []struct {
		Nombre string `json:"nombre"`
	}
	testutil.DecodeData(t, testutil.Decode(t, res), &data)
	require.Len(t, data, 1)
	assert.Equal(t, "Refresco", data[0].Nombre)
}

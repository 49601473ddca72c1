package server

import (
	"strings"
	"time"

	"hamburgueseria-backend/internal/auth"
	"hamburgueseria-backend/internal/categorias"
	"hamburgueseria-backend/internal/config"
	"hamburgueseria-backend/internal/ingredientes"
	"hamburgueseria-backend/internal/logging"
	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/opciones"
	"hamburgueseria-backend/internal/productos"
	"hamburgueseria-backend/internal/respond"
	"hamburgueseria-backend/internal/sucursales"
	"hamburgueseria-backend/internal/usuarios"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

// New arma la aplicación completa: middlewares, rutas y manejo de
// errores. main y los tests comparten esta construcción.
func New(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: respond.ErrorHandler(cfg.AppEnv),
	})

	app.Use(logging.RequestLogger())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Estado del servicio (público)
	api.Get("/status", func(c *fiber.Ctx) error {
		return respond.OK(c, "API funcionando correctamente", fiber.Map{
			"nombre":    cfg.ServiceName,
			"version":   cfg.ServiceVersion,
			"timestamp": time.Now(),
		})
	})

	// Autenticación
	api.Post("/auth/login", auth.LoginHandler(cfg, db))
	api.Get("/auth/verify", auth.RequireAuth(cfg), auth.VerifyHandler(db))

	requireAuth := auth.RequireAuth(cfg)
	requireActive := auth.RequireActiveUser(db)
	soloAdmin := auth.RequireRol(models.RolAdministrador)

	// Gestión de usuarios
	grpUsuarios := api.Group("/usuarios", requireAuth, requireActive)
	grpUsuarios.Get("/", usuarios.ListHandler(db))
	grpUsuarios.Post("/", soloAdmin, usuarios.CreateHandler(db))
	grpUsuarios.Post("/autorizar", usuarios.AutorizarHandler(db))
	grpUsuarios.Get("/:id", usuarios.GetHandler(db))
	grpUsuarios.Put("/:id", usuarios.UpdateHandler(db))
	grpUsuarios.Delete("/:id", soloAdmin, usuarios.DeactivateHandler(db))

	// Gestión de sucursales
	grpSucursales := api.Group("/sucursales", requireAuth, requireActive)
	grpSucursales.Get("/", sucursales.ListHandler(db))
	grpSucursales.Get("/:id", sucursales.GetHandler(db))
	grpSucursales.Post("/", soloAdmin, sucursales.CreateHandler(db))
	grpSucursales.Put("/:id", soloAdmin, sucursales.UpdateHandler(db))
	grpSucursales.Delete("/:id", soloAdmin, sucursales.DeactivateHandler(db))

	// Gestión de categorías
	grpCategorias := api.Group("/categorias", requireAuth, requireActive)
	grpCategorias.Get("/", categorias.ListHandler(db))
	grpCategorias.Get("/:id", categorias.GetHandler(db))
	grpCategorias.Post("/", soloAdmin, categorias.CreateHandler(db))
	grpCategorias.Put("/:id", soloAdmin, categorias.UpdateHandler(db))
	grpCategorias.Delete("/:id", soloAdmin, categorias.DeleteHandler(db))

	// Gestión de ingredientes (el stock también lo ajusta cocina)
	grpIngredientes := api.Group("/ingredientes", requireAuth, requireActive)
	grpIngredientes.Get("/", ingredientes.ListHandler(db))
	grpIngredientes.Get("/:id", ingredientes.GetHandler(db))
	grpIngredientes.Post("/", soloAdmin, ingredientes.CreateHandler(db))
	grpIngredientes.Put("/:id", soloAdmin, ingredientes.UpdateHandler(db))
	grpIngredientes.Delete("/:id", soloAdmin, ingredientes.DeleteHandler(db))
	grpIngredientes.Post("/:id/stock",
		auth.RequireRol(models.RolAdministrador, models.RolCocinero),
		ingredientes.AdjustStockHandler(db))

	// Gestión de productos
	grpProductos := api.Group("/productos", requireAuth, requireActive)
	grpProductos.Get("/", productos.ListHandler(db))
	grpProductos.Get("/:id", productos.GetHandler(db))
	grpProductos.Post("/", soloAdmin, productos.CreateHandler(db))
	grpProductos.Put("/:id/opciones", soloAdmin, productos.ReconcileOpcionesHandler(db))
	grpProductos.Put("/:id", soloAdmin, productos.UpdateHandler(db))
	grpProductos.Delete("/:id", soloAdmin, productos.DeleteHandler(db))

	// Gestión de opciones de producto
	grpOpciones := api.Group("/opciones-producto", requireAuth, requireActive)
	grpOpciones.Get("/", opciones.ListHandler(db))
	grpOpciones.Get("/producto/:productoId", opciones.ListByProductoHandler(db))
	grpOpciones.Get("/:id", opciones.GetHandler(db))
	grpOpciones.Post("/", soloAdmin, opciones.CreateHandler(db))
	grpOpciones.Put("/:id", soloAdmin, opciones.UpdateHandler(db))
	grpOpciones.Delete("/:id", soloAdmin, opciones.DeleteHandler(db))

	// Rutas no encontradas
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Ruta no encontrada")
	})

	return app
}

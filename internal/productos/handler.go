package productos

import (
	"errors"
	"strings"
	"time"

	"hamburgueseria-backend/internal/models"
	"hamburgueseria-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoriaResumen struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
}

type ProductoView struct {
	ID                 uuid.UUID         `json:"id"`
	Nombre             string            `json:"nombre"`
	Descripcion        string            `json:"descripcion"`
	PrecioBase         decimal.Decimal   `json:"precio_base"`
	Categoria          *CategoriaResumen `json:"categoria"`
	Imagen             string            `json:"imagen"`
	Disponible         bool              `json:"disponible"`
	ParaLlevar         models.ParaLlevar `json:"para_llevar"`
	FechaCreacion      time.Time         `json:"fecha_creacion"`
	FechaActualizacion time.Time         `json:"fecha_actualizacion"`
}

func toView(p *models.Producto) ProductoView {
	view := ProductoView{
		ID:                 p.ID,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		PrecioBase:         p.PrecioBase,
		Imagen:             p.Imagen,
		Disponible:         p.Disponible,
		ParaLlevar:         p.ParaLlevar,
		FechaCreacion:      p.CreatedAt,
		FechaActualizacion: p.UpdatedAt,
	}
	if p.Categoria != nil {
		view.Categoria = &CategoriaResumen{
			ID:          p.Categoria.ID,
			Nombre:      p.Categoria.Nombre,
			Descripcion: p.Categoria.Descripcion,
		}
	}
	return view
}

type IngredienteResumen struct {
	ID              uuid.UUID       `json:"id"`
	Nombre          string          `json:"nombre"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
	Disponible      bool            `json:"disponible"`
	Stock           float64         `json:"stock"`
}

type OpcionView struct {
	ID                     uuid.UUID           `json:"id"`
	Ingrediente            *IngredienteResumen `json:"ingrediente"`
	EsPredeterminado       bool                `json:"es_predeterminado"`
	EsRemovible            bool                `json:"es_removible"`
	CantidadPredeterminada float64             `json:"cantidad_predeterminada"`
}

func toOpcionView(o *models.OpcionProducto) OpcionView {
	view := OpcionView{
		ID:                     o.ID,
		EsPredeterminado:       o.EsPredeterminado,
		EsRemovible:            o.EsRemovible,
		CantidadPredeterminada: o.CantidadPredeterminada,
	}
	if o.Ingrediente != nil {
		view.Ingrediente = &IngredienteResumen{
			ID:              o.Ingrediente.ID,
			Nombre:          o.Ingrediente.Nombre,
			PrecioAdicional: o.Ingrediente.PrecioAdicional,
			Disponible:      o.Ingrediente.Disponible,
			Stock:           o.Ingrediente.Stock,
		}
	}
	return view
}

func opcionesDeProducto(db *gorm.DB, productoID uuid.UUID) ([]OpcionView, error) {
	var opciones []models.OpcionProducto
	err := db.Preload("Ingrediente").Where("producto_id = ?", productoID).Find(&opciones).Error
	if err != nil {
		return nil, err
	}
	res := make([]OpcionView, 0, len(opciones))
	for i := range opciones {
		res = append(res, toOpcionView(&opciones[i]))
	}
	return res, nil
}

// OpcionEntrada es una entrada de la lista de ingredientes al crear un
// producto o al reconciliar sus opciones.
type OpcionEntrada struct {
	Ingrediente            string   `json:"ingrediente"`
	EsPredeterminado       *bool    `json:"es_predeterminado"`
	EsRemovible            *bool    `json:"es_removible"`
	CantidadPredeterminada *float64 `json:"cantidad_predeterminada"`
}

type CreateRequest struct {
	Nombre       string           `json:"nombre"`
	Descripcion  string           `json:"descripcion"`
	PrecioBase   *decimal.Decimal `json:"precio_base"`
	Categoria    string           `json:"categoria"`
	Imagen       string           `json:"imagen"`
	Disponible   *bool            `json:"disponible"`
	ParaLlevar   string           `json:"para_llevar"`
	Ingredientes []OpcionEntrada  `json:"ingredientes"`
}

type UpdateRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	PrecioBase  *decimal.Decimal `json:"precio_base"`
	Categoria   *string          `json:"categoria"`
	Imagen      *string          `json:"imagen"`
	Disponible  *bool            `json:"disponible"`
	ParaLlevar  *string          `json:"para_llevar"`
}

func ListHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Preload("Categoria")
		if disponible := c.Query("disponible"); disponible != "" {
			query = query.Where("disponible = ?", disponible == "true")
		}
		if categoria := c.Query("categoria"); categoria != "" {
			query = query.Where("categoria_id = ?", categoria)
		}
		if paraLlevar := c.Query("para_llevar"); paraLlevar != "" {
			query = query.Where("para_llevar = ?", paraLlevar)
		}

		var productos []models.Producto
		if err := query.Find(&productos).Error; err != nil {
			return err
		}

		res := make([]ProductoView, 0, len(productos))
		for i := range productos {
			res = append(res, toView(&productos[i]))
		}
		return respond.OK(c, "", res)
	}
}

func GetHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var producto models.Producto
		if err := db.Preload("Categoria").First(&producto, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}
			return err
		}

		opciones, err := opcionesDeProducto(db, producto.ID)
		if err != nil {
			return err
		}

		return respond.OK(c, "", fiber.Map{
			"producto":              toView(&producto),
			"opciones_ingredientes": opciones,
		})
	}
}

func CreateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" || body.PrecioBase == nil || body.Categoria == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, precio base y categoría son requeridos")
		}
		if body.PrecioBase.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El precio base no puede ser negativo")
		}

		categoriaID, err := uuid.Parse(body.Categoria)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador de categoría inválido")
		}
		var categoria models.Categoria
		if err := db.First(&categoria, "id = ?", categoriaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "La categoría especificada no existe")
			}
			return err
		}

		producto := models.Producto{
			Nombre:      body.Nombre,
			Descripcion: strings.TrimSpace(body.Descripcion),
			PrecioBase:  body.PrecioBase.Round(2),
			CategoriaID: categoriaID,
			Imagen:      strings.TrimSpace(body.Imagen),
			Disponible:  true,
			ParaLlevar:  models.ParaLlevarAmbos,
		}
		if body.Disponible != nil {
			producto.Disponible = *body.Disponible
		}
		if body.ParaLlevar != "" {
			paraLlevar := models.ParaLlevar(body.ParaLlevar)
			if !paraLlevar.Valida() {
				return fiber.NewError(fiber.StatusBadRequest, "Valor de para_llevar inválido. Debe ser \"sí\", \"no\" o \"ambos\"")
			}
			producto.ParaLlevar = paraLlevar
		}

		// Producto y opciones iniciales se insertan juntos: si una
		// entrada es inválida no debe quedar un producto a medias. Un
		// ingrediente inexistente sí se omite sin abortar la creación.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&producto).Error; err != nil {
				return err
			}
			for _, entrada := range body.Ingredientes {
				if err := crearOpcion(tx, producto.ID, entrada); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		var creado models.Producto
		if err := db.Preload("Categoria").First(&creado, "id = ?", producto.ID).Error; err != nil {
			return err
		}

		if len(body.Ingredientes) > 0 {
			opciones, err := opcionesDeProducto(db, producto.ID)
			if err != nil {
				return err
			}
			return respond.Created(c, "Producto creado exitosamente", fiber.Map{
				"producto":              toView(&creado),
				"opciones_ingredientes": opciones,
			})
		}
		return respond.Created(c, "Producto creado exitosamente", toView(&creado))
	}
}

// crearOpcion inserta una opción para el producto; si el ingrediente no
// existe la entrada se descarta con un aviso.
func crearOpcion(db *gorm.DB, productoID uuid.UUID, entrada OpcionEntrada) error {
	ingredienteID, err := uuid.Parse(entrada.Ingrediente)
	if err != nil {
		log.Warn().Str("ingrediente", entrada.Ingrediente).Msg("identificador de ingrediente inválido, se omitirá")
		return nil
	}

	var ingrediente models.Ingrediente
	if err := db.First(&ingrediente, "id = ?", ingredienteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("ingrediente", entrada.Ingrediente).Msg("ingrediente no encontrado, se omitirá")
			return nil
		}
		return err
	}

	opcion := models.OpcionProducto{
		ProductoID:             productoID,
		IngredienteID:          ingredienteID,
		EsPredeterminado:       true,
		EsRemovible:            true,
		CantidadPredeterminada: 1,
	}
	if entrada.EsPredeterminado != nil {
		opcion.EsPredeterminado = *entrada.EsPredeterminado
	}
	if entrada.EsRemovible != nil {
		opcion.EsRemovible = *entrada.EsRemovible
	}
	if entrada.CantidadPredeterminada != nil {
		if *entrada.CantidadPredeterminada < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La cantidad predeterminada no puede ser negativa")
		}
		opcion.CantidadPredeterminada = *entrada.CantidadPredeterminada
	}
	return db.Create(&opcion).Error
}

func UpdateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}
			return err
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre del producto no puede estar vacío")
			}
			producto.Nombre = nombre
		}
		if body.Descripcion != nil {
			producto.Descripcion = strings.TrimSpace(*body.Descripcion)
		}
		if body.PrecioBase != nil {
			if body.PrecioBase.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "El precio base no puede ser negativo")
			}
			producto.PrecioBase = body.PrecioBase.Round(2)
		}
		if body.Categoria != nil {
			categoriaID, err := uuid.Parse(*body.Categoria)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Identificador de categoría inválido")
			}
			var categoria models.Categoria
			if err := db.First(&categoria, "id = ?", categoriaID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "La categoría especificada no existe")
				}
				return err
			}
			producto.CategoriaID = categoriaID
		}
		if body.Imagen != nil {
			producto.Imagen = strings.TrimSpace(*body.Imagen)
		}
		if body.Disponible != nil {
			producto.Disponible = *body.Disponible
		}
		if body.ParaLlevar != nil {
			paraLlevar := models.ParaLlevar(*body.ParaLlevar)
			if !paraLlevar.Valida() {
				return fiber.NewError(fiber.StatusBadRequest, "Valor de para_llevar inválido. Debe ser \"sí\", \"no\" o \"ambos\"")
			}
			producto.ParaLlevar = paraLlevar
		}

		if err := db.Save(&producto).Error; err != nil {
			return err
		}

		var actualizado models.Producto
		if err := db.Preload("Categoria").First(&actualizado, "id = ?", producto.ID).Error; err != nil {
			return err
		}
		opciones, err := opcionesDeProducto(db, producto.ID)
		if err != nil {
			return err
		}

		return respond.OK(c, "Producto actualizado exitosamente", fiber.Map{
			"producto":              toView(&actualizado),
			"opciones_ingredientes": opciones,
		})
	}
}

// DeleteHandler elimina el producto y, en cascada, sus opciones.
func DeleteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}
			return err
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("producto_id = ?", id).Delete(&models.OpcionProducto{}).Error; err != nil {
				return err
			}
			return tx.Delete(&producto).Error
		})
		if err != nil {
			return err
		}

		return respond.OK(c, "Producto y sus opciones eliminados exitosamente", nil)
	}
}

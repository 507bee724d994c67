package http

import (
	"github.com/gofiber/fiber/v2"
)

// Roles con permiso de escritura sobre catálogo e inventario.
var writerRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Importer       ImportService
	Movements      MovementService
	Categories     CategoryService
	Labels         LabelService
	Images         ImageReader
	ImagePath      string // ruta del prefijo público de imágenes (ej. /erp); vacío = no se sirven
	JWTSecret      string
	TempDir        string
	MaxUploadBytes int64
}

// Router registra las rutas de la API, que requieren Bearer Token, y las imágenes públicas.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Images != nil && deps.ImagePath != "" {
		app.Get(deps.ImagePath+"/:folder/:name", NewImageHandler(deps.Images).Serve)
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(writerRoles...)

	// Importación de hojas
	importHandler := NewImportHandler(deps.Importer, deps.TempDir, deps.MaxUploadBytes)
	imports := api.Group("/import")
	imports.Post("/excel", writers, importHandler.Upload)
	imports.Get("/shapes", importHandler.Shapes)

	// Movimientos manuales y saldos
	inventoryHandler := NewInventoryHandler(deps.Movements)
	inv := api.Group("/inventory")
	inv.Post("/movements", writers, inventoryHandler.RegisterMovement)
	inv.Get("/items/:id/balance", inventoryHandler.Balance)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Categories, deps.Labels)
	api.Delete("/categories/:id", writers, catalogHandler.DeleteCategory)
	api.Get("/ledger/buckets/:id/labels", catalogHandler.BucketLabels)
}

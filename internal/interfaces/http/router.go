package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/grid"
	"github.com/jhoicas/Ostricola-api/internal/application/item"
	"github.com/jhoicas/Ostricola-api/internal/application/reorg"
	"github.com/jhoicas/Ostricola-api/internal/application/table"
	"github.com/jhoicas/Ostricola-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *item.UseCase
	TableUC      *table.UseCase
	GridUC       *grid.UseCase
	TransferUC   *transfer.UseCase
	ReorgUC      *reorg.UseCase
	JWTSecret    string
	DefaultRatio float64
}

// Router registra las rutas de la API. Todo el dominio va protegido por
// Bearer Token; las escrituras exigen rol operador y la reorganización admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(RoleOperador)

	// Items (catálogo + libro de movimientos)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", write, itemHandler.Register)
	items.Get("/", itemHandler.List)
	items.Get("/stats", itemHandler.Stats)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", write, itemHandler.Update)
	items.Delete("/:id", write, itemHandler.Archive)
	items.Post("/:id/adjustments", write, itemHandler.Adjust)
	items.Get("/:id/movements", itemHandler.History)

	// Tables (mesas de cultivo)
	tables := protected.Group("/tables")
	tableHandler := NewTableHandler(deps.TableUC)
	tables.Post("/", write, tableHandler.Create)
	tables.Get("/", tableHandler.List)
	tables.Get("/:id", tableHandler.GetByID)
	tables.Delete("/:id", write, tableHandler.Delete)

	// Cells (cuadrícula de cada mesa)
	gridHandler := NewGridHandler(deps.GridUC, deps.DefaultRatio)
	tables.Get("/:id/cells", gridHandler.List)
	tables.Post("/:id/cells", write, gridHandler.Append)
	tables.Post("/:id/cells/rebuild", write, gridHandler.Rebuild)
	cells := protected.Group("/cells")
	cells.Put("/:cellId/status", write, gridHandler.SetStatus)

	// Transfers (traslados entre mesas)
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", write, transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	tables.Get("/:id/transfers", transferHandler.ListByTable)

	// Reorganización global (solo admin)
	reorgHandler := NewReorgHandler(deps.ReorgUC)
	protected.Post("/reorganizations", RequireRole(RoleAdmin), reorgHandler.Run)
}

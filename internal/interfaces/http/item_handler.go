package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/item"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos (protegido).
type ItemHandler struct {
	uc *item.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *item.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar artículo de inventario
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterItemRequest  true  "name, classification (TRIPLOID|DIPLOID), unit, cost, selling_price, location, reorder_point"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo con su disponible vivo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos activos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        classification  query  string  false  "TRIPLOID | DIPLOID"
// @Param        limit           query  int     false  "Tamaño de página (def. 20)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.Context(), c.Query("classification"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos del artículo
// @Description  Nombre, costo, precio y ubicación. La cantidad disponible no
// @Description  es editable: se deriva del libro de movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateMetadata(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de existencias
// @Description  Registra un movimiento en el libro; el signo de delta decide
// @Description  la dirección. La referencia hace el ajuste idempotente.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.AdjustmentRequest  true  "delta, reference, note"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/adjustments [post]
func (h *ItemHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movementID, err := h.uc.RecordAdjustment(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
}

// Archive godoc
// @Summary      Archivar artículo
// @Description  Baja lógica: el artículo deja de aceptar movimientos pero su
// @Description  historial permanece.
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Estadísticas de inventario
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/items/stats [get]
func (h *ItemHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Artículos bajo su punto de reorden
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.LowStock(c.Context(), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// History godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del artículo"
// @Param        since  query  string  false  "Desde (RFC3339)"
// @Param        limit  query  int     false  "Tamaño de página (def. 20)"
// @Param        offset query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	var since *time.Time
	if s := c.Query("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "since debe ser RFC3339"})
		}
		since = &t
	}
	out, err := h.uc.History(c.Context(), c.Params("id"), since, page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

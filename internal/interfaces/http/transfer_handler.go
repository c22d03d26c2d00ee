package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/transfer"
)

// TransferHandler maneja los traslados entre mesas (protegido).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Trasladar existencias entre mesas
// @Description  Atómico: drena celdas de origen, llena destino y registra el
// @Description  par de movimientos en el libro, todo o nada. Solo entre mesas
// @Description  de la misma clasificación.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "source_table_id, destination_table_id, quantity, reference (opcional)"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Transfer(c.Context(), transfer.Input{
		SourceID:  in.SourceTableID,
		DestID:    in.DestinationTableID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ListByTable godoc
// @Summary      Traslados donde una mesa participó
// @Description  Incluye traslados con la mesa como origen o destino, del más
// @Description  reciente al más antiguo.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la mesa"
// @Param        limit   query  int     false  "Tamaño de página (def. 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/transfers [get]
func (h *TransferHandler) ListByTable(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListByTable(c.Context(), c.Params("id"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

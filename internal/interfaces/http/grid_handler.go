package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/grid"
	domaingrid "github.com/jhoicas/Ostricola-api/internal/domain/grid"
)

// GridHandler maneja las celdas de una mesa (protegido). defaultRatio es el
// ratio de llenado configurado, usado cuando la petición no trae uno.
type GridHandler struct {
	uc           *grid.UseCase
	defaultRatio float64
}

// NewGridHandler construye el handler.
func NewGridHandler(uc *grid.UseCase, defaultRatio float64) *GridHandler {
	return &GridHandler{uc: uc, defaultRatio: defaultRatio}
}

// Rebuild godoc
// @Summary      Reconstruir la cuadrícula de una mesa
// @Description  Reemplaza las celdas por una numeración contigua 1..N. Las
// @Description  primeras round(N*fill_ratio) nacen FILLED, el resto EMPTY.
// @Tags         cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la mesa"
// @Param        body  body  dto.RebuildCellsRequest  true  "cell_count, fill_ratio (opcional)"
// @Success      200   {object}  dto.CellListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/cells/rebuild [post]
func (h *GridHandler) Rebuild(c *fiber.Ctx) error {
	var in dto.RebuildCellsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ratio := h.defaultRatio
	if in.FillRatio != nil {
		ratio = *in.FillRatio
	}
	if ratio < 0 || ratio > 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fill_ratio debe estar entre 0 y 1"})
	}
	out, err := h.uc.Rebuild(c.Context(), c.Params("id"), in.CellCount, domaingrid.RatioPolicy(ratio))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar celdas de una mesa
// @Tags         cells
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la mesa"
// @Success      200  {object}  dto.CellListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/cells [get]
func (h *GridHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Append godoc
// @Summary      Añadir una celda al final de la cuadrícula
// @Description  La celda recibe el siguiente número contiguo.
// @Tags         cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la mesa"
// @Param        body  body  dto.AppendCellRequest  false "status inicial (def. EMPTY)"
// @Success      201   {object}  dto.CellResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/cells [post]
func (h *GridHandler) Append(c *fiber.Ctx) error {
	var in dto.AppendCellRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.AppendCell(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de una celda
// @Description  Transiciones válidas: EMPTY→FILLED, FILLED→HARVESTED,
// @Description  cualquiera→MAINTENANCE y MAINTENANCE→EMPTY.
// @Tags         cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        cellId  path  string                    true  "ID de la celda"
// @Param        body    body  dto.SetCellStatusRequest  true  "status, quantity (opcional)"
// @Success      200     {object}  dto.CellResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/cells/{cellId}/status [put]
func (h *GridHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetCellStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.Context(), c.Params("cellId"), in.Status, in.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

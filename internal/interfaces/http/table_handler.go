package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/table"
)

// TableHandler maneja las peticiones HTTP de mesas de cultivo (protegido).
type TableHandler struct {
	uc *table.UseCase
}

// NewTableHandler construye el handler.
func NewTableHandler(uc *table.UseCase) *TableHandler {
	return &TableHandler{uc: uc}
}

// Create godoc
// @Summary      Crear mesa de cultivo
// @Tags         tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "name, classification, row_index, column_index, item_id (opcional)"
// @Success      201   {object}  dto.TableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tables [post]
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener mesa
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tables/{id} [get]
func (h *TableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar mesas en orden de planta
// @Description  Ordenadas por (column_index, row_index); filtrable por
// @Description  clasificación.
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        classification  query  string  false  "TRIPLOID | DIPLOID"
// @Success      200  {object}  dto.TableListResponse
// @Router       /api/tables [get]
func (h *TableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByClassification(c.Context(), c.Query("classification"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mesa vacía
// @Description  Falla con 409 si alguna celda conserva existencias.
// @Tags         tables
// @Security     Bearer
// @Param        id  path  string  true  "ID de la mesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tables/{id} [delete]
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/application/reorg"
)

// ReorgHandler dispara la reorganización de todas las cuadrículas (solo
// admin).
type ReorgHandler struct {
	uc *reorg.UseCase
}

// NewReorgHandler construye el handler.
func NewReorgHandler(uc *reorg.UseCase) *ReorgHandler {
	return &ReorgHandler{uc: uc}
}

// ReorgRequest parámetros opcionales; vacíos usan los valores de config.
type ReorgRequest struct {
	CellsPerTable int      `json:"cells_per_table" validate:"omitempty,min=1"`
	FillRatio     *float64 `json:"fill_ratio"`
}

// Run godoc
// @Summary      Reorganizar todas las cuadrículas
// @Description  Reconstruye las celdas de todas las mesas en una sola
// @Description  transacción, agrupadas por clasificación y en orden de
// @Description  planta. Nunca queda aplicada a medias.
// @Tags         reorganization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  ReorgRequest  false  "cells_per_table, fill_ratio (opcionales)"
// @Success      200   {object}  dto.ReorgResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reorganizations [post]
func (h *ReorgHandler) Run(c *fiber.Ctx) error {
	var opts *reorg.Options
	if len(c.Body()) > 0 {
		var in ReorgRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		if in.FillRatio != nil && (*in.FillRatio < 0 || *in.FillRatio > 1) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fill_ratio debe estar entre 0 y 1"})
		}
		if in.CellsPerTable != 0 || in.FillRatio != nil {
			o := reorg.Options{CellsPerTable: in.CellsPerTable}
			if in.FillRatio != nil {
				o.FillRatio = *in.FillRatio
			}
			opts = &o
		}
	}
	out, err := h.uc.RebuildAll(c.Context(), opts)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ostricola-api/internal/application/dto"
	"github.com/jhoicas/Ostricola-api/internal/domain"
)

// errorJSON traduce los errores de dominio a respuestas HTTP. Todos los
// handlers delegan aquí para que la misma clase de error produzca siempre el
// mismo status y code.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCellCount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicateReference):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REFERENCE", Message: "referencia ya usada con otros datos"})
	case errors.Is(err, domain.ErrClassificationMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CLASSIFICATION_MISMATCH", Message: "las clasificaciones no coinciden"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrNotEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TABLE_NOT_EMPTY", Message: "la mesa tiene celdas con existencias"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
	"github.com/jhoicas/catalogo-erp/internal/domain"
)

// writeError traduce errores de dominio a la respuesta HTTP. El mensaje de un ImportError
// se devuelve tal cual: es lo que ve quien subió la hoja.
func writeError(c *fiber.Ctx, err error) error {
	if ie, ok := domain.AsImportError(err); ok {
		status := fiber.StatusUnprocessableEntity
		if !ie.Kind.IsValidation() {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: string(ie.Kind), Message: ie.Error()})
	}
	var inUse *domain.CategoryInUseError
	if errors.As(err, &inUse) {
		return c.Status(fiber.StatusConflict).JSON(dto.CategoryInUseResponse{
			Code: "CATEGORY_IN_USE", Message: inUse.Error(),
			ItemCount: inUse.ItemCount, ChildCount: inUse.ChildCount,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

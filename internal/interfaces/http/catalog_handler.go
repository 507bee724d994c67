package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
)

// CategoryService borrado protegido de categorías (implementado por catalog.CategoryUseCase).
type CategoryService interface {
	Delete(ctx context.Context, id int64) error
}

// LabelService hoja de etiquetas de un movimiento (implementado por catalog.LabelUseCase).
type LabelService interface {
	BucketLabels(ctx context.Context, bucketID int64) ([]byte, error)
}

// CatalogHandler maneja categorías y etiquetas (protegido).
type CatalogHandler struct {
	categories CategoryService
	labels     LabelService
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories CategoryService, labels LabelService) *CatalogHandler {
	return &CatalogHandler{categories: categories, labels: labels}
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Description  Se rechaza si algún producto o subcategoría la referencia.
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.CategoryInUseResponse
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.categories.Delete(c.Context(), int64(id)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BucketLabels godoc
// @Summary      Etiquetas de código de barras de un movimiento
// @Tags         catalog
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/buckets/{id}/labels [get]
func (h *CatalogHandler) BucketLabels(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	doc, err := h.labels.BucketLabels(c.Context(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

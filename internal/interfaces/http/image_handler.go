package http

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
)

// ImageReader lee imágenes ya publicadas (implementado por storage.ImageStore).
type ImageReader interface {
	Open(folder, name string) ([]byte, error)
}

// ImageHandler sirve las imágenes importadas en la URL registrada en cada producto.
type ImageHandler struct {
	images ImageReader
}

// NewImageHandler construye el handler.
func NewImageHandler(images ImageReader) *ImageHandler {
	return &ImageHandler{images: images}
}

// Serve godoc
// @Summary      Imagen de producto
// @Description  Pública: es la URL guardada en el producto al importar.
// @Tags         catalog
// @Produce      image/png
// @Param        folder  path  string  true  "Carpeta (sku, embryo)"
// @Param        name    path  string  true  "Archivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /erp/{folder}/{name} [get]
func (h *ImageHandler) Serve(c *fiber.Ctx) error {
	folder, name := c.Params("folder"), c.Params("name")
	if !plainSegment(folder) || !plainSegment(name) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "imagen no encontrada"})
	}
	data, err := h.images.Open(folder, name)
	if errors.Is(err, os.ErrNotExist) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "imagen no encontrada"})
	}
	if err != nil {
		return writeError(c, err)
	}
	c.Type(strings.TrimPrefix(filepath.Ext(name), "."))
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

// plainSegment rechaza segmentos vacíos, relativos o con separadores.
func plainSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

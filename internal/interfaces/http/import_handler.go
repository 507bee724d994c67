package http

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-erp/internal/application/dto"
	"github.com/jhoicas/catalogo-erp/internal/application/importer"
)

// ImportService importación de libros (implementado por importer.Importer).
type ImportService interface {
	ImportFile(ctx context.Context, path, shapeKey string, actorID int64) (importer.RunResult, error)
	Shapes() []*importer.SheetShape
}

// ImportHandler maneja la carga de hojas de proveedor (protegido).
type ImportHandler struct {
	svc      ImportService
	tempDir  string
	maxBytes int64
}

// NewImportHandler construye el handler. El archivo subido se guarda en tempDir mientras dura la importación.
func NewImportHandler(svc ImportService, tempDir string, maxBytes int64) *ImportHandler {
	return &ImportHandler{svc: svc, tempDir: tempDir, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Importar hoja de proveedor
// @Description  Registra todas las filas como una entrada de inventario o no registra nada.
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Libro .xlsx"
// @Param        tp     formData  string  false  "Código de formato (0, 1, 2)"
// @Param        shape  formData  string  false  "Nombre de formato (items, embryo, orders)"
// @Success      201    {object}  dto.ImportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      413    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/import/excel [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == 0 {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera el tamaño permitido"})
	}
	shape := c.FormValue("tp")
	if shape == "" {
		shape = c.FormValue("shape")
	}
	if shape == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tp o shape es requerido"})
	}

	path := filepath.Join(h.tempDir, uuid.NewString()+".xlsx")
	if err := c.SaveFile(fh, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo guardar el archivo"})
	}
	defer os.Remove(path)

	res, err := h.svc.ImportFile(c.Context(), path, shape, accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResponse{
		Message:  "importación completada",
		RunID:    res.RunID,
		BucketID: res.BucketID,
		Records:  res.Records,
	})
}

// Shapes godoc
// @Summary      Formatos de hoja aceptados
// @Tags         import
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShapeResponse
// @Router       /api/import/shapes [get]
func (h *ImportHandler) Shapes(c *fiber.Ctx) error {
	shapes := h.svc.Shapes()
	out := make([]dto.ShapeResponse, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, dto.ShapeResponse{Name: s.Name, Code: s.Code, FirstRow: s.FirstRow, Images: s.HasImages()})
	}
	return c.JSON(out)
}

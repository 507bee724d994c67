package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ImportErrorKind clasifica los fallos de una importación de hoja de cálculo.
type ImportErrorKind string

const (
	KindMissingRequiredField ImportErrorKind = "MISSING_REQUIRED_FIELD"
	KindInvalidStructure     ImportErrorKind = "INVALID_STRUCTURE"
	KindDuplicateIdentity    ImportErrorKind = "DUPLICATE_IDENTITY"
	KindOrphanCategory       ImportErrorKind = "ORPHAN_CATEGORY"
	KindUnresolvedReference  ImportErrorKind = "UNRESOLVED_REFERENCE"
	KindStorageFailure       ImportErrorKind = "STORAGE_FAILURE"
)

// IsValidation indica si el tipo de error aborta antes de cualquier escritura.
func (k ImportErrorKind) IsValidation() bool {
	return k != KindStorageFailure
}

// ImportError es el único error que ve quien sube la hoja: un mensaje legible,
// atribuido a fila/columna cuando aplica.
type ImportError struct {
	Kind    ImportErrorKind
	Row     int    // fila de la hoja (1-based); 0 si no aplica
	Column  string // etiqueta de la columna; vacío si no aplica
	Rows    []int  // filas involucradas (duplicados)
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "fila %d", e.Row)
		if e.Column != "" {
			fmt.Fprintf(&b, ", columna %s", e.Column)
		}
		b.WriteString(": ")
	} else if len(e.Rows) > 0 {
		parts := make([]string, 0, len(e.Rows))
		for _, r := range e.Rows {
			parts = append(parts, strconv.Itoa(r))
		}
		fmt.Fprintf(&b, "filas %s: ", strings.Join(parts, ", "))
	}
	b.WriteString(e.Message)
	if e.Kind == KindStorageFailure && e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

func (e *ImportError) Unwrap() error { return e.Err }

// NewRowError construye un error atribuido a una celda.
func NewRowError(kind ImportErrorKind, row int, column, format string, args ...any) *ImportError {
	return &ImportError{Kind: kind, Row: row, Column: column, Message: fmt.Sprintf(format, args...)}
}

// StorageFailure envuelve un error de persistencia; se muestra tal cual, sin reintento.
func StorageFailure(op string, err error) *ImportError {
	return &ImportError{Kind: KindStorageFailure, Message: op, Err: err}
}

// AsImportError extrae un *ImportError de la cadena de errores.
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// CategoryInUseError rechaza el borrado de una categoría todavía referenciada.
type CategoryInUseError struct {
	CategoryID int64
	ItemCount  int
	ChildCount int
}

func (e *CategoryInUseError) Error() string {
	if e.ChildCount > 0 && e.ItemCount == 0 {
		return fmt.Sprintf("la categoría %d tiene %d subcategorías", e.CategoryID, e.ChildCount)
	}
	return fmt.Sprintf("la categoría %d está asignada a %d productos", e.CategoryID, e.ItemCount)
}

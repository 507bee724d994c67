package entity

import "time"

// Tipos de categoría (taxonomía de dos niveles).
const (
	CategoryMajor = "major" // categoría principal, sin padre
	CategoryMinor = "minor" // subcategoría, cuelga siempre de una principal
)

// Category representa una categoría de productos. Las subcategorías tienen ParentID
// distinto de cero; (Name, ParentID) es único.
type Category struct {
	ID        int64
	Index     int
	Name      string
	Type      string
	ParentID  int64 // 0 si es principal
	CreatedAt time.Time
}

// IsMajor indica si la categoría es de primer nivel.
func (c *Category) IsMajor() bool { return c.Type == CategoryMajor }

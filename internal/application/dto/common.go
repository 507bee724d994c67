package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuesta simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// CategoryInUseResponse 409 al borrar una categoría todavía referenciada.
type CategoryInUseResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ItemCount  int    `json:"item_count"`
	ChildCount int    `json:"child_count"`
}

package dto

// ImportResponse respuesta de POST /api/import/excel.
type ImportResponse struct {
	Message  string `json:"message"`
	RunID    string `json:"run_id"`
	BucketID int64  `json:"bucket_id"`
	Records  int    `json:"records"`
}

// ShapeResponse describe un formato de hoja aceptado.
type ShapeResponse struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	FirstRow int    `json:"first_row"`
	Images   bool   `json:"images"`
}

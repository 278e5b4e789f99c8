package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse arma la respuesta; Items nunca se serializa como null.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// DateRangeQuery filtro de fechas (YYYY-MM-DD, "to" inclusivo hasta 23:59:59.999).
type DateRangeQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// SearchQuery búsqueda de texto libre en listados (ignora mayúsculas y acentos).
type SearchQuery struct {
	Q string `query:"q" validate:"omitempty,max=100"`
}

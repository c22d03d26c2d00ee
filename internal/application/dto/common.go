package dto

// Límites de paginación para todos los listados.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage normaliza la página: acota Limit a [1, maxPageSize] y
// descarta offsets negativos.
func (p *PageRequest) DefaultPage() {
	switch {
	case p.Limit <= 0:
		p.Limit = defaultPageSize
	case p.Limit > maxPageSize:
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// PageOf refleja la petición ya normalizada en los metadatos de respuesta.
func PageOf(p PageRequest) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset}
}

// ErrorResponse cuerpo de error HTTP. Code es un identificador estable de la
// clase de error; Message es legible para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

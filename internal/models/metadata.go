package models

// TipoNormaDesconocido marks a document whose norm type could not be derived.
const TipoNormaDesconocido = "DESCONOCIDO"

// Metadata holds the typed fields derived from a document's title and text.
type Metadata struct {
	ID             string           `json:"id"`
	Titulo         string           `json:"titulo"`
	TipoNorma      string           `json:"tipo_norma"`
	NumeroNorma    string           `json:"numero_norma,omitempty"`
	Fecha          string           `json:"fecha,omitempty"`
	FechaRaw       string           `json:"fecha_raw,omitempty"`
	Seccion        string           `json:"seccion,omitempty"`
	EntidadEmisora string           `json:"entidad_emisora,omitempty"`
	Temas          []string         `json:"temas,omitempty"`
	Resumen        string           `json:"resumen,omitempty"`
	URLPDF         string           `json:"url_pdf,omitempty"`
	URLDetalle     string           `json:"url_detalle,omitempty"`
	Estructura     StructureSummary `json:"estructura"`
}

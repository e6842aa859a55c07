// Package models defines the data structures shared across the gaceta pipeline.
package models

// RawDocument is a gazette publication as delivered by a text source,
// before any parsing. Front-matter fields come from the listing page;
// RawText comes from PDF or detail-page extraction.
type RawDocument struct {
	ID         string `json:"id"`
	TituloRaw  string `json:"titulo_raw"`
	FechaRaw   string `json:"fecha_raw"`
	SeccionRaw string `json:"seccion_raw"`
	URLPDF     string `json:"url_pdf"`
	URLDetalle string `json:"url_detalle"`
	RawText    string `json:"raw_text"`
}

// StructureSummary counts the structural sections found in a document.
type StructureSummary struct {
	TieneVistos          bool `json:"tiene_vistos"`
	NumConsiderandos     int  `json:"num_considerandos"`
	TienePorTanto        bool `json:"tiene_por_tanto"`
	TieneDecretaResuelve bool `json:"tiene_decreta_resuelve"`
	NumArticulos         int  `json:"num_articulos"`
	NumDispFinales       int  `json:"num_disposiciones_finales"`
	NumDispTransitorias  int  `json:"num_disposiciones_transitorias"`
	NumDispAdicionales   int  `json:"num_disposiciones_adicionales"`
	NumDispAbrogatorias  int  `json:"num_disposiciones_abrogatorias"`
}

// Record is the final output unit: one per RawDocument, flattening the
// identifying fields, the derived metadata, and the structural counts.
type Record struct {
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
	Articulos      []Article        `json:"articulos,omitempty"`
	Firmantes      []string         `json:"firmantes,omitempty"`
	TextoCompleto  string           `json:"texto_completo,omitempty"`
}

// ValidationResult reports record validity. Warnings never affect IsValid.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

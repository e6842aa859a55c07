package models

// Article is one numbered article of a norm. Numero is always the
// canonical digit form, even when the source used an ordinal word.
type Article struct {
	Numero    string `json:"numero"`
	Contenido string `json:"contenido"`
}

// ParsedSections holds the canonical legal sections of one document.
// Built once by the parser, read-only afterwards. Absent scalar sections
// are empty strings; absent list sections are empty slices.
type ParsedSections struct {
	TextoCompleto string `json:"texto_completo"`

	Vistos          string   `json:"vistos,omitempty"`
	Considerando    []string `json:"considerando,omitempty"`
	PorTanto        string   `json:"por_tanto,omitempty"`
	DecretaResuelve string   `json:"decreta_resuelve,omitempty"`

	Articulos []Article `json:"articulos,omitempty"`

	DisposicionesFinales      []string `json:"disposiciones_finales,omitempty"`
	DisposicionesTransitorias []string `json:"disposiciones_transitorias,omitempty"`
	DisposicionesAdicionales  []string `json:"disposiciones_adicionales,omitempty"`
	DisposicionesAbrogatorias []string `json:"disposiciones_abrogatorias,omitempty"`

	Firmantes []string `json:"firmantes,omitempty"`
}

// Summary derives the structural counts used in metadata and exports.
func (p *ParsedSections) Summary() StructureSummary {
	return StructureSummary{
		TieneVistos:          p.Vistos != "",
		NumConsiderandos:     len(p.Considerando),
		TienePorTanto:        p.PorTanto != "",
		TieneDecretaResuelve: p.DecretaResuelve != "",
		NumArticulos:         len(p.Articulos),
		NumDispFinales:       len(p.DisposicionesFinales),
		NumDispTransitorias:  len(p.DisposicionesTransitorias),
		NumDispAdicionales:   len(p.DisposicionesAdicionales),
		NumDispAbrogatorias:  len(p.DisposicionesAbrogatorias),
	}
}

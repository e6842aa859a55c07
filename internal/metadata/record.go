package metadata

import (
	"fmt"

	"gacetabo/internal/models"
)

// BuildRecord flattens one document's front matter, parsed sections, and
// derived metadata into the final export record. No field is transformed
// lossily; truncation happens only in the resolver (resumen) and the CSV
// writer.
func BuildRecord(doc *models.RawDocument, sections *models.ParsedSections, meta models.Metadata) *models.Record {
	rec := &models.Record{
		ID:             meta.ID,
		Titulo:         meta.Titulo,
		TipoNorma:      meta.TipoNorma,
		NumeroNorma:    meta.NumeroNorma,
		Fecha:          meta.Fecha,
		FechaRaw:       meta.FechaRaw,
		Seccion:        meta.Seccion,
		EntidadEmisora: meta.EntidadEmisora,
		Temas:          meta.Temas,
		Resumen:        meta.Resumen,
		URLPDF:         meta.URLPDF,
		URLDetalle:     meta.URLDetalle,
		Estructura:     meta.Estructura,
	}

	if sections != nil {
		rec.Articulos = sections.Articulos
		rec.Firmantes = sections.Firmantes
		rec.TextoCompleto = sections.TextoCompleto
	}

	return rec
}

// Validate checks a document's metadata. Only missing ID or title make it
// invalid; unknown norm type and missing date are reported as warnings.
func Validate(meta models.Metadata) models.ValidationResult {
	result := models.ValidationResult{}

	if meta.ID == "" {
		result.Errors = append(result.Errors, "falta el ID del documento")
	}

	if meta.Titulo == "" {
		result.Errors = append(result.Errors, "falta el título del documento")
	}

	if meta.TipoNorma == models.TipoNormaDesconocido {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("tipo de norma desconocido para %s", meta.ID))
	}

	if meta.Fecha == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("fecha no identificada para %s", meta.ID))
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

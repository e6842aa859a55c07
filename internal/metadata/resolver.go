package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"gacetabo/internal/models"
)

const (
	tipoSearchLimit = 500
	temaSearchLimit = 1000
	dateSearchLimit = 1000

	resumenTitleLimit        = 200
	resumenConsiderandoLimit = 150
)

// Resolver derives typed metadata fields from a document's title and text.
// Each field resolves independently; a field that cannot be derived yields
// its absent value, never an error. Safe for concurrent use.
type Resolver struct {
	tables *Tables

	tipoPatterns  []compiledTipo
	extraPatterns []compiledTipo

	numeroPatterns []*regexp.Regexp

	entidadPatterns []compiledEntidad
}

type compiledTipo struct {
	nombre  string
	pattern *regexp.Regexp
}

type compiledEntidad struct {
	nombre   string
	pattern  *regexp.Regexp
	useMatch bool
}

// NewResolver compiles the given lookup tables. Pass DefaultTables() for the
// standard Bolivian gazette configuration.
func NewResolver(tables *Tables) *Resolver {
	r := &Resolver{tables: tables}

	for _, tipo := range tables.TiposNorma {
		r.tipoPatterns = append(r.tipoPatterns, compiledTipo{
			nombre:  tipo,
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(tipo) + `\b`),
		})
	}

	for _, extra := range tables.TiposExtra {
		r.extraPatterns = append(r.extraPatterns, compiledTipo{
			nombre:  extra.Nombre,
			pattern: regexp.MustCompile(`(?i)` + extra.Pattern),
		})
	}

	r.numeroPatterns = []*regexp.Regexp{
		// LEY N° 1234, DECRETO SUPREMO N° 4567: up to two qualifier words
		// between the keyword and the number token.
		regexp.MustCompile(`(?i)\b(?:LEY|DECRETO|RESOLUCI[OÓ]N)(?:\s+[\wÁÉÍÓÚÑáéíóúñ-]+){0,2}?\s+(?:N[°º]?|NRO\.?|No\.?)\s*(\d+)`),
		// D.S. N° 1234 / D.S. 1234
		regexp.MustCompile(`(?i)\bD\.S\.\s*(?:N[°º]?|NRO\.?|No\.?)?\s*(\d+)`),
		// 1234/2024
		regexp.MustCompile(`(\d+)\s*[-/]\s*\d{4}`),
	}

	for _, ent := range tables.Entidades {
		r.entidadPatterns = append(r.entidadPatterns, compiledEntidad{
			nombre:   ent.Nombre,
			pattern:  regexp.MustCompile(`(?i)` + ent.Pattern),
			useMatch: ent.UseMatch,
		})
	}

	return r
}

// Resolve derives the full metadata for one document from its front matter
// and parsed sections.
func (r *Resolver) Resolve(doc *models.RawDocument, sections *models.ParsedSections) models.Metadata {
	titulo := doc.TituloRaw

	texto := ""
	if sections != nil {
		texto = sections.TextoCompleto
	}

	meta := models.Metadata{
		ID:             doc.ID,
		Titulo:         titulo,
		TipoNorma:      r.TipoNorma(titulo, texto),
		NumeroNorma:    r.NumeroNorma(titulo, texto),
		FechaRaw:       doc.FechaRaw,
		Seccion:        doc.SeccionRaw,
		URLPDF:         doc.URLPDF,
		URLDetalle:     doc.URLDetalle,
		Temas:          r.Temas(titulo, texto),
		EntidadEmisora: r.EntidadEmisora(titulo, texto),
		Resumen:        r.Resumen(titulo, sections),
	}

	meta.Fecha = r.resolveFecha(doc.FechaRaw, titulo, texto)

	if meta.Seccion == "" {
		meta.Seccion = meta.TipoNorma
	}

	if sections != nil {
		meta.Estructura = sections.Summary()
	}

	return meta
}

// TipoNorma identifies the norm type from title plus body prefix. The
// disambiguating patterns run first so compound types (DECRETO LEY, LEY
// MUNICIPAL) are not shadowed by their shorter enumerated forms, then the
// enumerated list is scanned in order.
func (r *Resolver) TipoNorma(titulo, texto string) string {
	search := titulo + " " + truncateRunes(texto, tipoSearchLimit)

	for _, tipo := range r.extraPatterns {
		if tipo.pattern.MatchString(search) {
			return tipo.nombre
		}
	}

	for _, tipo := range r.tipoPatterns {
		if tipo.pattern.MatchString(search) {
			return tipo.nombre
		}
	}

	return models.TipoNormaDesconocido
}

// NumeroNorma extracts the norm number, trying the keyword+number, D.S., and
// number/year families in order. Returns "" when none match.
func (r *Resolver) NumeroNorma(titulo, texto string) string {
	search := titulo + " " + truncateRunes(texto, tipoSearchLimit)

	for _, pattern := range r.numeroPatterns {
		if m := pattern.FindStringSubmatch(search); m != nil {
			return m[1]
		}
	}

	return ""
}

// Temas returns the topic tags whose keywords appear in the lowercased title
// plus body prefix, in table order, each at most once.
func (r *Resolver) Temas(titulo, texto string) []string {
	search := strings.ToLower(titulo + " " + truncateRunes(texto, temaSearchLimit))

	var temas []string

	for _, entry := range r.tables.Temas {
		for _, keyword := range entry.Keywords {
			if strings.Contains(search, keyword) {
				temas = append(temas, entry.Tema)

				break
			}
		}
	}

	return temas
}

// EntidadEmisora identifies the issuing entity. The generic MINISTERIO entry
// returns the matched phrase itself so specific ministries are preserved.
func (r *Resolver) EntidadEmisora(titulo, texto string) string {
	search := titulo + " " + truncateRunes(texto, temaSearchLimit)

	for _, ent := range r.entidadPatterns {
		m := ent.pattern.FindString(search)
		if m == "" {
			continue
		}

		if ent.useMatch {
			return strings.TrimSpace(m)
		}

		return ent.nombre
	}

	return ""
}

// Resumen builds a short summary: truncated title, article count, and the
// first considerando.
func (r *Resolver) Resumen(titulo string, sections *models.ParsedSections) string {
	var parts []string

	if titulo != "" {
		parts = append(parts, truncateRunes(titulo, resumenTitleLimit))
	}

	if sections != nil {
		if n := len(sections.Articulos); n > 0 {
			parts = append(parts, fmt.Sprintf("Contiene %d artículo(s)", n))
		}

		if len(sections.Considerando) > 0 {
			primer := truncateRunes(sections.Considerando[0], resumenConsiderandoLimit)
			parts = append(parts, "Considerando: "+primer+"...")
		}
	}

	return strings.Join(parts, ". ")
}

// resolveFecha normalizes the raw date, searching title and body prefix for
// a date-shaped candidate when no raw date was supplied.
func (r *Resolver) resolveFecha(fechaRaw, titulo, texto string) string {
	if fechaRaw == "" {
		fechaRaw = FindDateCandidate(titulo + " " + truncateRunes(texto, dateSearchLimit))
	}

	if fechaRaw == "" {
		return ""
	}

	return r.NormalizeDate(fechaRaw)
}

// truncateRunes limits a string to n runes without splitting multibyte
// characters.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

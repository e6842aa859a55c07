package parser

import (
	"regexp"
	"strings"

	"gacetabo/internal/models"
)

// Parser extracts the canonical legal sections from normalized gazette text.
// All patterns are compiled once; a Parser is safe for concurrent use.
type Parser struct {
	vistosHeader       *regexp.Regexp
	considerandoHeader *regexp.Regexp
	porTantoHeader     *regexp.Regexp
	decretaHeader      *regexp.Regexp
	resuelveHeader     *regexp.Regexp

	// Terminator keyword patterns. Each section captures up to the first
	// match by position among its own set.
	termConsiderando *regexp.Regexp
	termPorTanto     *regexp.Regexp
	termDecreta      *regexp.Regexp
	termResuelve     *regexp.Regexp
	termArticulo     *regexp.Regexp
	termDisposicion  *regexp.Regexp
	termCierre       *regexp.Regexp

	queBoundary *regexp.Regexp

	articleDigit   *regexp.Regexp
	articleOrdinal *regexp.Regexp
	articleLoose   *regexp.Regexp

	dispHeaders map[DispositionKind]*regexp.Regexp
	dispAny     *regexp.Regexp
	itemMarker  *regexp.Regexp

	signerLine *regexp.Regexp
}

const ordinalAlternation = `PRIMER[OA]?|SEGUND[OA]?|TERCER[OA]?|CUART[OA]?|QUINT[OA]?|SEXT[OA]?|S[EÉ]PTIM[OA]?|OCTAV[OA]?|NOVEN[OA]?|D[EÉ]CIM[OA]?`

// NewParser creates a parser with all section patterns compiled.
func NewParser() *Parser {
	dispKinds := `FINAL(?:ES)?|TRANSITORIA(?:S)?|ADICIONAL(?:ES)?|ABROGATORIA(?:S)?`

	p := &Parser{
		vistosHeader:       regexp.MustCompile(`(?i)\bVISTOS?[:\s]+`),
		considerandoHeader: regexp.MustCompile(`(?i)\bCONSIDERANDO[:\s]+`),
		porTantoHeader:     regexp.MustCompile(`(?i)\bPOR\s+TANTO[:\s,]+`),
		decretaHeader:      regexp.MustCompile(`(?i)\b(?:SE\s+)?DECRETA[:\s]+`),
		resuelveHeader:     regexp.MustCompile(`(?i)\b(?:SE\s+)?RESUELVE[:\s]+`),

		termConsiderando: regexp.MustCompile(`(?i)\bCONSIDERANDO\b`),
		termPorTanto:     regexp.MustCompile(`(?i)\bPOR\s+TANTO\b`),
		termDecreta:      regexp.MustCompile(`(?i)\b(?:SE\s+)?DECRETA\b`),
		termResuelve:     regexp.MustCompile(`(?i)\b(?:SE\s+)?RESUELVE\b`),
		termArticulo:     regexp.MustCompile(`(?i)\bART[IÍ]CULOS?\b`),
		termDisposicion:  regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\b`),
		termCierre:       regexp.MustCompile(`(?i)\bREG[IÍ]STRESE\b|\bCOMUN[IÍ]QUESE\b`),

		queBoundary: regexp.MustCompile(`(?i)(?:^|\n|[.;]\s+)(que\s)`),

		articleDigit:   regexp.MustCompile(`(?i)\bART[IÍ]CULOS?\s+(\d+)[°º]?[.\-:\s]+`),
		articleOrdinal: regexp.MustCompile(`(?i)\bART[IÍ]CULOS?\s+(` + ordinalAlternation + `)[°º]?[.\-:\s]+`),
		articleLoose:   regexp.MustCompile(`(?i)^Art[íi]culo\s+(\d+)[°º]?[.\-:\s]*`),

		dispHeaders: map[DispositionKind]*regexp.Regexp{
			DispFinales:      regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\s+FINAL(?:ES)?[.\-:\s]+`),
			DispTransitorias: regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\s+TRANSITORIA(?:S)?[.\-:\s]+`),
			DispAdicionales:  regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\s+ADICIONAL(?:ES)?[.\-:\s]+`),
			DispAbrogatorias: regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\s+ABROGATORIA(?:S)?[.\-:\s]+`),
		},
		dispAny:    regexp.MustCompile(`(?i)\bDISPOSICI[OÓ]N(?:ES)?\s+(` + dispKinds + `)\b`),
		itemMarker: regexp.MustCompile(`(?i)(^|\n|[.;:]\s+)((?:` + ordinalAlternation + `|\d+)[°º]?[.\-:\s]+)`),

		signerLine: regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s.]+$`),
	}

	return p
}

// Segment normalizes text and splits it into the canonical legal sections.
// Sections that are absent yield empty strings or empty slices, never errors.
func (p *Parser) Segment(text string) *models.ParsedSections {
	text = Normalize(text)

	sections := &models.ParsedSections{TextoCompleto: text}
	if text == "" {
		return sections
	}

	sections.Vistos = p.capture(text, p.vistosHeader,
		p.termConsiderando, p.termPorTanto, p.termDecreta, p.termResuelve)

	considerandoBlock := p.capture(text, p.considerandoHeader,
		p.termPorTanto, p.termDecreta, p.termResuelve, p.termArticulo)
	sections.Considerando = p.splitConsiderandos(considerandoBlock)

	sections.PorTanto = p.capture(text, p.porTantoHeader,
		p.termDecreta, p.termResuelve, p.termArticulo)

	sections.DecretaResuelve = p.capture(text, p.decretaHeader,
		p.termArticulo, p.termDisposicion)
	if sections.DecretaResuelve == "" {
		sections.DecretaResuelve = p.capture(text, p.resuelveHeader,
			p.termArticulo, p.termDisposicion)
	}

	sections.Articulos = p.ExtractArticles(text)

	sections.DisposicionesFinales = p.ExtractDispositions(text, DispFinales)
	sections.DisposicionesTransitorias = p.ExtractDispositions(text, DispTransitorias)
	sections.DisposicionesAdicionales = p.ExtractDispositions(text, DispAdicionales)
	sections.DisposicionesAbrogatorias = p.ExtractDispositions(text, DispAbrogatorias)

	sections.Firmantes = p.ExtractSigners(text)

	return sections
}

// capture isolates the text between the first header match and the earliest
// following terminator. Returns "" when the header is absent or the section
// body is empty.
func (p *Parser) capture(text string, header *regexp.Regexp, terminators ...*regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	tail := text[loc[1]:]

	end := earliestMatch(tail, terminators)
	if end < 0 {
		end = len(tail)
	}

	return strings.TrimSpace(tail[:end])
}

// earliestMatch returns the smallest start offset among all pattern matches,
// or -1 when none match.
func earliestMatch(text string, patterns []*regexp.Regexp) int {
	earliest := -1

	for _, pattern := range patterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}

		if earliest < 0 || loc[0] < earliest {
			earliest = loc[0]
		}
	}

	return earliest
}

// splitConsiderandos breaks a CONSIDERANDO block into individual clauses.
// Boundaries are "Que " at the block start, after a newline, or after
// sentence-ending punctuation. Pieces that lost the prefix get it back.
func (p *Parser) splitConsiderandos(block string) []string {
	if block == "" {
		return nil
	}

	matches := p.queBoundary.FindAllStringSubmatchIndex(block, -1)

	cuts := make([]int, 0, len(matches)+1)
	for _, m := range matches {
		cuts = append(cuts, m[2])
	}

	if len(cuts) == 0 || cuts[0] != 0 {
		cuts = append([]int{0}, cuts...)
	}

	var considerandos []string

	for i, start := range cuts {
		end := len(block)
		if i+1 < len(cuts) {
			end = cuts[i+1]
		}

		piece := strings.TrimSpace(block[start:end])
		if piece == "" {
			continue
		}

		if !strings.HasPrefix(strings.ToLower(piece), "que ") {
			piece = "Que " + piece
		}

		considerandos = append(considerandos, piece)
	}

	return considerandos
}

package parser

import "strings"

// DispositionKind names one of the four closing disposition classes.
type DispositionKind string

// Recognized disposition kinds.
const (
	DispFinales      DispositionKind = "FINALES"
	DispTransitorias DispositionKind = "TRANSITORIAS"
	DispAdicionales  DispositionKind = "ADICIONALES"
	DispAbrogatorias DispositionKind = "ABROGATORIAS"
)

// AllDispositionKinds lists the kinds in canonical order.
var AllDispositionKinds = []DispositionKind{
	DispFinales, DispTransitorias, DispAdicionales, DispAbrogatorias,
}

// ExtractDispositions returns the individual dispositions of the given kind.
// The block runs from the "DISPOSICIÓN(ES) <kind>" header (singular or
// plural) to the next disposition header of a different kind, a closing
// formula, or end of text, and is split on ordinal/numeric item markers.
// Returns nil when the header is absent.
func (p *Parser) ExtractDispositions(text string, kind DispositionKind) []string {
	header, ok := p.dispHeaders[kind]
	if !ok {
		return nil
	}

	loc := header.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	tail := text[loc[1]:]
	end := len(tail)

	for _, m := range p.dispAny.FindAllStringSubmatchIndex(tail, -1) {
		if classifyDispositionKind(tail[m[2]:m[3]]) != kind {
			if m[0] < end {
				end = m[0]
			}

			break
		}
	}

	if cierre := p.termCierre.FindStringIndex(tail); cierre != nil && cierre[0] < end {
		end = cierre[0]
	}

	block := strings.TrimSpace(tail[:end])
	if block == "" {
		return nil
	}

	return p.splitDispositionItems(block)
}

// classifyDispositionKind maps a matched kind word (FINAL, TRANSITORIAS, ...)
// to its canonical kind.
func classifyDispositionKind(word string) DispositionKind {
	switch {
	case strings.HasPrefix(strings.ToUpper(word), "FINAL"):
		return DispFinales
	case strings.HasPrefix(strings.ToUpper(word), "TRANSITORIA"):
		return DispTransitorias
	case strings.HasPrefix(strings.ToUpper(word), "ADICIONAL"):
		return DispAdicionales
	default:
		return DispAbrogatorias
	}
}

// splitDispositionItems splits a disposition block on ordinal or numeric item
// markers. Markers only count at the block start, after a newline, or after
// sentence-ending punctuation, so a stem word mid-sentence does not split.
func (p *Parser) splitDispositionItems(block string) []string {
	matches := p.itemMarker.FindAllStringSubmatchIndex(block, -1)
	if len(matches) == 0 {
		return []string{block}
	}

	var items []string

	appendItem := func(piece string) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			items = append(items, piece)
		}
	}

	prev := 0

	for _, m := range matches {
		// m[4] is the marker start; the boundary chars before it stay with
		// the previous item.
		appendItem(block[prev:m[4]])
		prev = m[5]
	}

	appendItem(block[prev:])

	return items
}

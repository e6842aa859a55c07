package parser

import (
	"regexp"
	"strings"

	"gacetabo/internal/models"
)

// ExtractArticles finds all numbered articles in the text. Digit headers are
// collected first, then ordinal-word headers; when neither pattern matches,
// a looser line-anchored fallback runs. Duplicate numbers keep the first
// candidate in encounter order.
func (p *Parser) ExtractArticles(text string) []models.Article {
	var candidates []models.Article

	candidates = append(candidates, p.matchArticles(text, p.articleDigit, false)...)
	candidates = append(candidates, p.matchArticles(text, p.articleOrdinal, true)...)

	if len(candidates) == 0 {
		candidates = p.looseArticles(text)
	}

	seen := make(map[string]bool, len(candidates))
	articles := make([]models.Article, 0, len(candidates))

	for _, art := range candidates {
		if seen[art.Numero] {
			continue
		}

		seen[art.Numero] = true
		articles = append(articles, art)
	}

	return articles
}

// matchArticles collects article candidates for one header pattern. A body
// runs to the next header of the same pattern, or to an article/disposition/
// closing-formula keyword, whichever comes first.
func (p *Parser) matchArticles(text string, header *regexp.Regexp, stopAtAnyArticle bool) []models.Article {
	matches := header.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	stops := []*regexp.Regexp{p.termDisposicion, p.termCierre}
	if stopAtAnyArticle {
		stops = append(stops, p.termArticulo)
	}

	articles := make([]models.Article, 0, len(matches))

	for i, m := range matches {
		numero := ConvertOrdinal(text[m[2]:m[3]])

		bodyStart := m[1]

		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		if cut := earliestMatch(text[bodyStart:bodyEnd], stops); cut >= 0 {
			bodyEnd = bodyStart + cut
		}

		contenido := strings.TrimSpace(text[bodyStart:bodyEnd])
		if contenido == "" {
			continue
		}

		articles = append(articles, models.Article{Numero: numero, Contenido: contenido})
	}

	return articles
}

// looseArticles scans line by line for "Artículo <n>" headers, accumulating
// continuation lines until the next header line.
func (p *Parser) looseArticles(text string) []models.Article {
	var articles []models.Article

	var current *models.Article

	flush := func() {
		if current == nil {
			return
		}

		current.Contenido = strings.TrimSpace(current.Contenido)
		if current.Contenido != "" {
			articles = append(articles, *current)
		}

		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := p.articleLoose.FindStringSubmatchIndex(trimmed); m != nil {
			flush()

			current = &models.Article{
				Numero:    trimmed[m[2]:m[3]],
				Contenido: trimmed[m[1]:],
			}

			continue
		}

		if current != nil {
			current.Contenido += "\n" + trimmed
		}
	}

	flush()

	return articles
}

// Package parser segments Bolivian gazette text into its canonical legal
// sections (VISTOS, CONSIDERANDO, POR TANTO, DECRETA/RESUELVE, numbered
// articles, and closing dispositions) using anchored pattern search.
package parser

import (
	"regexp"
	"strings"
)

var (
	separatorRunPattern = regexp.MustCompile(`[-_=]{10,}`)
	multiSpacePattern   = regexp.MustCompile(` {2,}`)
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes whitespace in raw extracted text: CRLF to LF,
// visual separator runs removed, space runs collapsed, 3+ newlines collapsed
// to two, and surrounding whitespace trimmed. Idempotent; empty in, empty out.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = separatorRunPattern.ReplaceAllString(text, "")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = multiNewlinePattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

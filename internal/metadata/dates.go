package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var textualDatePattern = regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+(\w+)\s+de\s+(\d{4})`)

// dateCandidatePatterns recognize the date shapes that appear in listing rows
// and document headers: textual Spanish, D/M/Y, Y-M-D, D-M-Y.
var dateCandidatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}\s+de\s+\w+\s+de\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
}

// NormalizeDate converts a raw Spanish date expression to YYYY-MM-DD.
// Primary path is a permissive parse preferring day-before-month; fallback is
// the "<día> de <mes> de <año>" form with the month table. When neither
// succeeds the raw string is returned unchanged, so an unparsed date is never
// silently dropped. Empty input yields empty output.
func (r *Resolver) NormalizeDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	parsed, err := dateparse.ParseAny(raw,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
	if err == nil {
		return parsed.Format("2006-01-02")
	}

	if m := textualDatePattern.FindStringSubmatch(raw); m != nil {
		if mes, ok := r.tables.Meses[strings.ToLower(m[2])]; ok {
			dia := m[1]
			if len(dia) == 1 {
				dia = "0" + dia
			}

			return fmt.Sprintf("%s-%s-%s", m[3], mes, dia)
		}
	}

	return raw
}

// FindDateCandidate returns the first date-shaped substring in text, or "".
func FindDateCandidate(text string) string {
	for _, pattern := range dateCandidatePatterns {
		if m := pattern.FindString(text); m != "" {
			return m
		}
	}

	return ""
}

package parser

import "strings"

// ordinalStems maps Spanish ordinal word stems (masculine and feminine,
// accented and unaccented) to their digit form. Matched by prefix so that
// PRIMERO, PRIMERA and PRIMER all resolve to "1".
var ordinalStems = []struct {
	stem  string
	digit string
}{
	{"PRIMER", "1"},
	{"SEGUND", "2"},
	{"TERCER", "3"},
	{"CUART", "4"},
	{"QUINT", "5"},
	{"SEXT", "6"},
	{"SEPTIM", "7"},
	{"SÉPTIM", "7"},
	{"OCTAV", "8"},
	{"NOVEN", "9"},
	{"DECIM", "10"},
	{"DÉCIM", "10"},
}

// ConvertOrdinal maps a Spanish ordinal word to its digit string. All-digit
// input passes through as-is; unmapped input is returned unchanged rather
// than rejected.
func ConvertOrdinal(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	if isAllDigits(trimmed) {
		return trimmed
	}

	upper := strings.ToUpper(trimmed)
	for _, entry := range ordinalStems {
		if strings.HasPrefix(upper, entry.stem) {
			return entry.digit
		}
	}

	return value
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

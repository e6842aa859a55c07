package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
	nonDigitPattern = regexp.MustCompile(`[^0-9]+`)
)

const (
	idSlugLimit      = 50
	idDateDigitLimit = 8
	idHashLen        = 12
)

// DocumentID derives a stable document ID from title, date text, and URL.
// The same inputs always produce the same ID, so the store can deduplicate
// across runs.
func DocumentID(titulo, fecha, url string) string {
	slug := nonAlnumPattern.ReplaceAllString(strings.ToLower(titulo), "_")
	slug = strings.Trim(slug, "_")

	if len(slug) > idSlugLimit {
		slug = slug[:idSlugLimit]
	}

	if slug == "" {
		return "doc_" + shortHash(firstNonEmpty(url, fecha))
	}

	if fecha != "" {
		digits := nonDigitPattern.ReplaceAllString(fecha, "")
		if len(digits) > idDateDigitLimit {
			digits = digits[:idDateDigitLimit]
		}

		if digits != "" {
			return slug + "_" + digits
		}
	}

	return slug + "_" + shortHash(firstNonEmpty(url, titulo))
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))

	return hex.EncodeToString(sum[:])[:idHashLen]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

package scraper

import (
	"strings"
	"testing"
)

func TestDocumentID_Deterministic(t *testing.T) {
	a := DocumentID("DECRETO SUPREMO N° 4567", "15 de enero de 2024", "https://example.com/a.pdf")
	b := DocumentID("DECRETO SUPREMO N° 4567", "15 de enero de 2024", "https://example.com/a.pdf")

	if a != b {
		t.Errorf("Expected stable IDs, got %q and %q", a, b)
	}
}

func TestDocumentID_SlugAndDateDigits(t *testing.T) {
	id := DocumentID("DECRETO SUPREMO N° 4567", "15 de enero de 2024", "https://example.com/a.pdf")

	if id != "decreto_supremo_n_4567_152024" {
		t.Errorf("Unexpected ID: %q", id)
	}
}

func TestDocumentID_NoDateUsesURLHash(t *testing.T) {
	withURL := DocumentID("LEY N° 1234", "", "https://example.com/a.pdf")
	otherURL := DocumentID("LEY N° 1234", "", "https://example.com/b.pdf")

	if !strings.HasPrefix(withURL, "ley_n_1234_") {
		t.Errorf("Expected slug prefix, got %q", withURL)
	}

	if withURL == otherURL {
		t.Error("Different URLs must produce different IDs when no date exists")
	}
}

func TestDocumentID_EmptyTitle(t *testing.T) {
	id := DocumentID("", "", "https://example.com/a.pdf")

	if !strings.HasPrefix(id, "doc_") {
		t.Errorf("Expected doc_ prefix for empty title, got %q", id)
	}

	if id != DocumentID("", "", "https://example.com/a.pdf") {
		t.Error("Expected stable fallback ID")
	}
}

func TestDocumentID_SlugLengthCapped(t *testing.T) {
	id := DocumentID(strings.Repeat("resolución ministerial ", 10), "2024-01-15", "")

	slug := strings.TrimSuffix(id, "_20240115")
	if len(slug) > 50 {
		t.Errorf("Expected slug capped at 50 chars, got %d in %q", len(slug), id)
	}
}

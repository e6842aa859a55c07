// Package export writes processed records to JSON and CSV files under the
// configured export directory.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gacetabo/internal/models"
)

// JSONWriter collects records and writes them as one indented JSON array on
// Close. The filename carries a timestamp so repeated runs never clobber
// earlier exports.
type JSONWriter struct {
	dir     string
	records []*models.Record
	path    string
}

// NewJSONWriter creates a JSON sink targeting dir.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{dir: dir}
}

// Write buffers one record for the final export.
func (w *JSONWriter) Write(rec *models.Record) error {
	w.records = append(w.records, rec)

	return nil
}

// Close writes the buffered records to disk.
func (w *JSONWriter) Close() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := json.MarshalIndent(w.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	w.path = filepath.Join(w.dir, fmt.Sprintf("gaceta_documentos_%s.json", time.Now().Format("20060102_150405")))

	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}

	return nil
}

// Path returns the file written by Close, empty before then.
func (w *JSONWriter) Path() string {
	return w.path
}

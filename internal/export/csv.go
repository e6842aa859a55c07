package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gacetabo/internal/models"
)

// maxCSVField caps cell length so spreadsheet tools stay responsive on
// documents with long full texts.
const maxCSVField = 1000

// csvColumns is the fixed export column order.
var csvColumns = []string{
	"id", "titulo", "tipo_norma", "numero_norma", "fecha", "seccion",
	"entidad_emisora", "url_pdf", "url_detalle", "resumen", "temas",
	"num_articulos", "num_considerandos", "tiene_vistos",
	"tiene_disposiciones_finales",
}

var csvWhitespace = regexp.MustCompile(`\s+`)

// CSVWriter streams records to a timestamped CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	dir    string
	path   string
}

// NewCSVWriter creates the export file and writes the header row.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("gaceta_documentos_%s.csv", time.Now().Format("20060102_150405")))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV export: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvColumns); err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	return &CSVWriter{file: file, writer: writer, dir: dir, path: path}, nil
}

// Write appends one record as a CSV row.
func (w *CSVWriter) Write(rec *models.Record) error {
	row := []string{
		sanitizeField(rec.ID),
		sanitizeField(rec.Titulo),
		sanitizeField(rec.TipoNorma),
		sanitizeField(rec.NumeroNorma),
		sanitizeField(rec.Fecha),
		sanitizeField(rec.Seccion),
		sanitizeField(rec.EntidadEmisora),
		sanitizeField(rec.URLPDF),
		sanitizeField(rec.URLDetalle),
		sanitizeField(rec.Resumen),
		sanitizeField(strings.Join(rec.Temas, ",")),
		strconv.Itoa(rec.Estructura.NumArticulos),
		strconv.Itoa(rec.Estructura.NumConsiderandos),
		boolField(rec.Estructura.TieneVistos),
		boolField(rec.Estructura.NumDispFinales > 0),
	}

	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row for %s: %w", rec.ID, err)
	}

	return nil
}

// Close flushes and closes the export file.
func (w *CSVWriter) Close() error {
	w.writer.Flush()

	if err := w.writer.Error(); err != nil {
		_ = w.file.Close()

		return fmt.Errorf("failed to flush CSV export: %w", err)
	}

	return w.file.Close()
}

// Path returns the export file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// sanitizeField flattens newlines, collapses runs of whitespace, and
// truncates overlong values with an ellipsis.
func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(csvWhitespace.ReplaceAllString(value, " "))

	runes := []rune(value)
	if len(runes) > maxCSVField {
		value = string(runes[:maxCSVField-3]) + "..."
	}

	return value
}

func boolField(b bool) string {
	if b {
		return "Sí"
	}

	return "No"
}

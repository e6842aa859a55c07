// Package report renders a console summary of a pipeline run: totals,
// type breakdown, and a preview table of the first records.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"gacetabo/internal/models"
	"gacetabo/internal/pipeline"
)

// previewRows caps the document preview table.
const previewRows = 10

// maxTitleWidth truncates long titles so the preview table stays readable.
const maxTitleWidth = 60

// Write renders the run summary to w.
func Write(w io.Writer, records []*models.Record, stats pipeline.Stats) {
	fmt.Fprintln(w, "Resumen de la ejecución")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintf(w, "Documentos procesados: %d\n", stats.Processed)
	fmt.Fprintf(w, "Válidos:               %d\n", stats.Valid)
	fmt.Fprintf(w, "Rechazados:            %d\n", stats.Invalid)
	fmt.Fprintf(w, "Advertencias:          %d\n", stats.Warnings)

	if len(records) == 0 {
		return
	}

	fmt.Fprintln(w)
	writeTypeBreakdown(w, records)
	fmt.Fprintln(w)
	writePreview(w, records)
}

func writeTypeBreakdown(w io.Writer, records []*models.Record) {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.TipoNorma]++
	}

	tipos := make([]string, 0, len(counts))
	for tipo := range counts {
		tipos = append(tipos, tipo)
	}

	sort.Strings(tipos)

	fmt.Fprintln(w, "Por tipo de norma:")

	for _, tipo := range tipos {
		fmt.Fprintf(w, "  %-30s %d\n", tipo, counts[tipo])
	}
}

func writePreview(w io.Writer, records []*models.Record) {
	rows := [][]string{{"ID", "Tipo", "Número", "Fecha", "Título"}}

	limit := len(records)
	if limit > previewRows {
		limit = previewRows
	}

	for _, rec := range records[:limit] {
		rows = append(rows, []string{
			rec.ID,
			rec.TipoNorma,
			rec.NumeroNorma,
			rec.Fecha,
			runewidth.Truncate(rec.Titulo, maxTitleWidth, "..."),
		})
	}

	for _, line := range renderTable(rows) {
		fmt.Fprintln(w, line)
	}

	if len(records) > limit {
		fmt.Fprintf(w, "... y %s documentos más\n", strconv.Itoa(len(records)-limit))
	}
}

// renderTable aligns rows into a pipe-delimited table using display widths,
// so accented characters do not skew the columns.
func renderTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := len(rows[0])
	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var result []string

	for rIdx, row := range rows {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())

		if rIdx == 0 {
			var sep strings.Builder

			sep.WriteString("|")

			for j := 0; j < colCount; j++ {
				sep.WriteString(strings.Repeat("-", colWidths[j]+2))
				sep.WriteString("|")
			}

			result = append(result, sep.String())
		}
	}

	return result
}

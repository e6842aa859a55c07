// Package pdftext extracts plain text from gazette PDFs using pdfcpu
// content-stream parsing, with a quality score that flags likely-scanned
// documents needing OCR.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoText indicates a PDF whose pages yielded no extractable text.
var ErrNoText = errors.New("no text content found in PDF")

// scannedQualityThreshold is the letter/space ratio below which a document
// is treated as a scan.
const scannedQualityThreshold = 0.5

// Result is the outcome of one PDF extraction.
type Result struct {
	Text          string
	PageCount     int
	Quality       float64
	LikelyScanned bool
}

// Extract reads a PDF file and returns its text, pages joined by blank
// lines. OCR is out of scope; scanned documents come back with
// LikelyScanned set so callers can report them.
func Extract(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	var pages []string

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}

	if len(pages) == 0 {
		return nil, ErrNoText
	}

	text := strings.Join(pages, "\n\n")
	quality := textQuality(text)

	return &Result{
		Text:          text,
		PageCount:     ctx.PageCount,
		Quality:       quality,
		LikelyScanned: quality < scannedQualityThreshold,
	}, nil
}

// extractPageText extracts text from a single PDF page via pdfcpu content stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}

	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}

	return extractTextFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tj / TJ operators: (text) Tj, [(text) -100 (more)] TJ
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}

		// ' operator: move to next line and show text
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}

		// Td/TD text positioning separates words
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

		// T* moves to the start of the next line
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanStreamText(sb.String())
}

// decodePDFString handles basic PDF escape sequences, including octal.
func decodePDFString(raw []byte) string {
	var sb strings.Builder

	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])

			continue
		}

		i++

		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')

				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}

				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}

	return sb.String()
}

// cleanStreamText normalizes whitespace and drops non-printable runes.
func cleanStreamText(text string) string {
	var sb strings.Builder

	prevSpace := false

	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteRune(r)
			prevSpace = true
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(sb.String())
}

// textQuality is the ratio of letters and spaces to all runes. Garbage from
// image-only or encrypted streams scores low.
func textQuality(text string) float64 {
	if text == "" {
		return 0
	}

	total, good := 0, 0

	for _, r := range text {
		total++

		if unicode.IsLetter(r) || unicode.IsSpace(r) || unicode.IsDigit(r) || unicode.IsPunct(r) {
			good++
		}
	}

	return float64(good) / float64(total)
}

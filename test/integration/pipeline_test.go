package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gacetabo/internal/config"
	"gacetabo/internal/export"
	"gacetabo/internal/logger"
	"gacetabo/internal/models"
	"gacetabo/internal/pipeline"
	"gacetabo/internal/scraper"
	"gacetabo/internal/store"
)

const listingPage = `<html><body>
<div class="norma">
  <h3>DECRETO SUPREMO N° 4567</h3>
  <span>15 de enero de 2024</span>
  <a href="/normas/4567">Ver norma</a>
</div>
<div class="norma">
  <h3>LEY N° 1234</h3>
  <span>20 de marzo de 2024</span>
  <a href="/normas/1234">Ver norma</a>
</div>
</body></html>`

const detailPage = `<html><body><article>
<p>VISTOS: el informe legal.</p>
<p>CONSIDERANDO: Que es necesario aprobar el reglamento.</p>
<p>POR TANTO:</p>
<p>SE DECRETA:</p>
<p>ARTÍCULO 1.- Apruébese el reglamento.</p>
<p>ARTÍCULO 2.- Publíquese.</p>
</article></body></html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/normas/buscar", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingPage))
	})

	mux.HandleFunc("/normas/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(detailPage))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	dir := t.TempDir()

	cfg := config.Default()
	cfg.Gaceta.BaseURL = baseURL
	cfg.Gaceta.Pages = 1
	cfg.Gaceta.Workers = 2
	cfg.Gaceta.RequestDelayMs = 1
	cfg.Gaceta.DownloadPDFs = false
	cfg.Dirs.Data = dir
	cfg.Dirs.PDFs = filepath.Join(dir, "pdfs")
	cfg.Dirs.Text = filepath.Join(dir, "text")
	cfg.Dirs.Exports = filepath.Join(dir, "exports")
	cfg.Store.Enabled = true
	cfg.Store.Path = filepath.Join(dir, "test.db")
	cfg.Logging.Level = "error"

	return cfg
}

// TestScrapeToExport runs the full flow against a stub gazette: listing
// crawl, detail-page text extraction, parsing, metadata resolution, and
// JSON/CSV/store sinks.
func TestScrapeToExport(t *testing.T) {
	server := testServer(t)
	cfg := testConfig(t, server.URL)
	log := logger.NewLogger(cfg.Logging.Level)

	source, err := scraper.NewSource(cfg, log)
	if err != nil {
		t.Fatalf("NewSource failed: %v", err)
	}
	defer source.Close()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	defer st.Close()

	jsonSink := export.NewJSONWriter(cfg.Dirs.Exports)

	csvSink, err := export.NewCSVWriter(cfg.Dirs.Exports)
	if err != nil {
		t.Fatalf("NewCSVWriter failed: %v", err)
	}

	sinks := []pipeline.RecordSink{st, jsonSink, csvSink}

	records, stats, err := pipeline.New(log).Run(context.Background(), source, sinks, cfg.Gaceta.Workers)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if err := jsonSink.Close(); err != nil {
		t.Fatalf("JSON close failed: %v", err)
	}

	if err := csvSink.Close(); err != nil {
		t.Fatalf("CSV close failed: %v", err)
	}

	if stats.Valid != 2 || stats.Invalid != 0 {
		t.Fatalf("Expected 2 valid records, got %+v", stats)
	}

	byTipo := map[string]*models.Record{}
	for _, rec := range records {
		byTipo[rec.TipoNorma] = rec
	}

	ds := byTipo["DECRETO SUPREMO"]
	if ds == nil {
		t.Fatalf("Missing DECRETO SUPREMO record in %+v", records)
	}

	if ds.Fecha != "2024-01-15" {
		t.Errorf("Unexpected fecha: %q", ds.Fecha)
	}

	if ds.Estructura.NumArticulos != 2 || !ds.Estructura.TieneVistos {
		t.Errorf("Unexpected estructura: %+v", ds.Estructura)
	}

	// Store round trip.
	stored, err := st.Get(ds.ID)
	if err != nil {
		t.Fatalf("store.Get failed: %v", err)
	}

	if stored.Titulo != ds.Titulo {
		t.Errorf("Stored title %q differs from %q", stored.Titulo, ds.Titulo)
	}

	count, err := st.Count()
	if err != nil {
		t.Fatalf("store.Count failed: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 stored documents, got %d", count)
	}

	// JSON export parses back.
	data, err := os.ReadFile(jsonSink.Path())
	if err != nil {
		t.Fatalf("Failed to read JSON export: %v", err)
	}

	var exported []models.Record
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("JSON export invalid: %v", err)
	}

	if len(exported) != 2 {
		t.Errorf("Expected 2 exported records, got %d", len(exported))
	}

	// CSV export has header plus one row per record.
	csvData, err := os.ReadFile(csvSink.Path())
	if err != nil {
		t.Fatalf("Failed to read CSV export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected header + 2 CSV rows, got %d lines", len(lines))
	}

	// Plain-text copies saved for reprocessing.
	entries, err := os.ReadDir(cfg.Dirs.Text)
	if err != nil {
		t.Fatalf("Failed to read text dir: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 text copies, got %d", len(entries))
	}
}

// TestReprocessFromLocalText feeds a saved text file back through the parse
// path, the way the CLI's parse command does.
func TestReprocessFromLocalText(t *testing.T) {
	log := logger.NewLogger("error")

	doc := models.RawDocument{
		ID:        scraper.DocumentID("DECRETO SUPREMO N° 4567", "15 de enero de 2024", ""),
		TituloRaw: "DECRETO SUPREMO N° 4567",
		FechaRaw:  "15 de enero de 2024",
		RawText:   "VISTOS: el informe. CONSIDERANDO: Que es necesario. POR TANTO: SE DECRETA: ARTÍCULO 1.- Apruébese.",
	}

	rec, result := pipeline.New(log).Process(&doc)

	if !result.IsValid {
		t.Fatalf("Expected valid record, errors: %q", result.Errors)
	}

	if rec.NumeroNorma != "4567" {
		t.Errorf("Unexpected numero: %q", rec.NumeroNorma)
	}

	if len(rec.Articulos) != 1 || rec.Articulos[0].Contenido != "Apruébese." {
		t.Errorf("Unexpected articulos: %+v", rec.Articulos)
	}
}

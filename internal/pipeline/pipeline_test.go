package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gacetabo/internal/logger"
	"gacetabo/internal/models"
)

type stubSource struct {
	docs []models.RawDocument
	err  error
}

func (s *stubSource) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	return s.docs, s.err
}

type memorySink struct {
	mu      sync.Mutex
	records []*models.Record
	closed  bool
}

func (m *memorySink) Write(rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)

	return nil
}

func (m *memorySink) Close() error {
	m.closed = true

	return nil
}

func TestPipeline_Process(t *testing.T) {
	p := New(logger.NewLogger("error"))

	doc := &models.RawDocument{
		ID:        "ds_4567",
		TituloRaw: "DECRETO SUPREMO N° 4567",
		FechaRaw:  "15 de enero de 2024",
		RawText:   "VISTOS: el informe. CONSIDERANDO: Que es necesario. POR TANTO: SE DECRETA: ARTÍCULO 1.- Apruébese.",
	}

	rec, result := p.Process(doc)

	if !result.IsValid {
		t.Fatalf("Expected valid record, errors: %q", result.Errors)
	}

	if rec.TipoNorma != "DECRETO SUPREMO" {
		t.Errorf("Unexpected tipo: %q", rec.TipoNorma)
	}

	if rec.Fecha != "2024-01-15" {
		t.Errorf("Unexpected fecha: %q", rec.Fecha)
	}

	if rec.Estructura.NumArticulos != 1 || !rec.Estructura.TieneVistos {
		t.Errorf("Unexpected estructura: %+v", rec.Estructura)
	}
}

func TestPipeline_Run(t *testing.T) {
	p := New(logger.NewLogger("error"))

	source := &stubSource{docs: []models.RawDocument{
		{ID: "a", TituloRaw: "LEY N° 1", RawText: "ARTÍCULO 1.- Uno."},
		{ID: "b", TituloRaw: "LEY N° 2", RawText: "ARTÍCULO 1.- Dos."},
		{ID: "c", TituloRaw: "", RawText: "sin título"},
	}}

	sink := &memorySink{}

	records, stats, err := p.Run(context.Background(), source, []RecordSink{sink}, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Processed != 3 {
		t.Errorf("Expected 3 processed, got %d", stats.Processed)
	}

	if stats.Valid != 2 || stats.Invalid != 1 {
		t.Errorf("Expected 2 valid and 1 invalid, got %+v", stats)
	}

	if len(records) != 2 {
		t.Errorf("Expected 2 records returned, got %d", len(records))
	}

	if len(sink.records) != 2 {
		t.Errorf("Expected 2 records in sink, got %d", len(sink.records))
	}
}

func TestPipeline_RunSourceError(t *testing.T) {
	p := New(logger.NewLogger("error"))

	source := &stubSource{err: errors.New("listing unreachable")}

	_, _, err := p.Run(context.Background(), source, nil, 1)
	if err == nil {
		t.Fatal("Expected error from failing source")
	}
}

func TestPipeline_RunPartialSource(t *testing.T) {
	p := New(logger.NewLogger("error"))

	// A source may return documents alongside an error; the documents still
	// get processed.
	source := &stubSource{
		docs: []models.RawDocument{{ID: "a", TituloRaw: "LEY N° 1", RawText: "ARTÍCULO 1.- Uno."}},
		err:  errors.New("page 2 unreachable"),
	}

	records, stats, err := p.Run(context.Background(), source, nil, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Valid != 1 || len(records) != 1 {
		t.Errorf("Expected the partial batch processed, got %+v", stats)
	}
}

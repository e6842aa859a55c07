// Package pipeline wires the scraper, parser, and metadata resolver together
// and fans processed records out to the configured sinks.
package pipeline

import (
	"context"
	"sync"

	"gacetabo/internal/logger"
	"gacetabo/internal/metadata"
	"gacetabo/internal/models"
	"gacetabo/internal/parser"
)

// TextSource supplies raw documents with their text already resolved.
type TextSource interface {
	Fetch(ctx context.Context) ([]models.RawDocument, error)
}

// RecordSink receives processed records. Write is called from a single
// goroutine; Close flushes whatever the sink buffered.
type RecordSink interface {
	Write(rec *models.Record) error
	Close() error
}

// Stats summarizes one pipeline run.
type Stats struct {
	Processed int
	Valid     int
	Invalid   int
	Warnings  int
}

// Pipeline turns raw documents into validated records.
type Pipeline struct {
	parser   *parser.Parser
	resolver *metadata.Resolver
	log      *logger.Logger
}

// New creates a pipeline with the default metadata tables.
func New(log *logger.Logger) *Pipeline {
	return &Pipeline{
		parser:   parser.NewParser(),
		resolver: metadata.NewResolver(metadata.DefaultTables()),
		log:      log,
	}
}

// Process segments one document, resolves its metadata, and builds the
// record. Parsing never fails; validation reports what is missing.
func (p *Pipeline) Process(doc *models.RawDocument) (*models.Record, models.ValidationResult) {
	sections := p.parser.Segment(doc.RawText)
	meta := p.resolver.Resolve(doc, sections)

	return metadata.BuildRecord(doc, sections, meta), metadata.Validate(meta)
}

type outcome struct {
	rec    *models.Record
	result models.ValidationResult
}

// Run fetches all documents from source, processes them across workers, and
// writes valid records to every sink. Invalid records are logged and
// dropped. The returned slice holds the valid records in completion order.
func (p *Pipeline) Run(ctx context.Context, source TextSource, sinks []RecordSink, workers int) ([]*models.Record, Stats, error) {
	docs, err := source.Fetch(ctx)
	if err != nil && len(docs) == 0 {
		return nil, Stats{}, err
	}

	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *models.RawDocument)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for doc := range jobs {
				rec, result := p.Process(doc)
				outcomes <- outcome{rec: rec, result: result}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for i := range docs {
			select {
			case <-ctx.Done():
				return
			case jobs <- &docs[i]:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var (
		stats   Stats
		records []*models.Record
	)

	for out := range outcomes {
		stats.Processed++

		for _, warning := range out.result.Warnings {
			stats.Warnings++
			p.log.Warn("validation warning", "id", out.rec.ID, "warning", warning)
		}

		if !out.result.IsValid {
			stats.Invalid++
			p.log.Error("record rejected", "id", out.rec.ID, "errors", out.result.Errors)

			continue
		}

		stats.Valid++
		records = append(records, out.rec)

		for _, sink := range sinks {
			if err := sink.Write(out.rec); err != nil {
				p.log.Error("sink write failed", "id", out.rec.ID, "error", err)
			}
		}
	}

	return records, stats, ctx.Err()
}

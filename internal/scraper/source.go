package scraper

import (
	"context"
	"os"
	"path/filepath"

	"gacetabo/internal/config"
	"gacetabo/internal/logger"
	"gacetabo/internal/models"
	"gacetabo/internal/pdftext"
)

// Source gathers raw documents end to end: listing crawl, PDF download and
// text extraction, detail-page fallback. It implements the pipeline's
// TextSource.
type Source struct {
	cfg     *config.Config
	log     *logger.Logger
	client  *Client
	lister  *Lister
	browser *Browser
}

// NewSource creates a document source. When browser mode is enabled in the
// config, listing pages are fetched through headless Chrome.
func NewSource(cfg *config.Config, log *logger.Logger) (*Source, error) {
	s := &Source{
		cfg:    cfg,
		log:    log,
		client: NewClient(&cfg.Retry, cfg.Gaceta.UserAgent),
		lister: NewLister(cfg, log),
	}

	if cfg.Browser.Enabled {
		s.browser = NewBrowser(cfg.Browser, log)
		if err := s.browser.Start(); err != nil {
			return nil, err
		}

		s.lister.SetHTMLFetcher(s.browser.FetchHTML)
	}

	return s, nil
}

// Fetch crawls the listing, resolves each document's text (PDF first, detail
// page otherwise), and returns the documents ready for parsing. Documents
// whose text cannot be obtained are still returned with empty text; the core
// degrades per-field rather than dropping records.
func (s *Source) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	docs, err := s.lister.ListDocuments(ctx)
	if err != nil && len(docs) == 0 {
		return nil, err
	}

	if limit := s.cfg.Gaceta.Limit; limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	for i := range docs {
		select {
		case <-ctx.Done():
			return docs[:i], ctx.Err()
		default:
		}

		docs[i].RawText = s.documentText(ctx, &docs[i])
	}

	return docs, nil
}

// Close releases the browser if one was started.
func (s *Source) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}

	return nil
}

func (s *Source) documentText(ctx context.Context, doc *models.RawDocument) string {
	if s.cfg.Gaceta.DownloadPDFs && doc.URLPDF != "" {
		path, err := s.client.DownloadPDF(ctx, doc.URLPDF, doc.ID, s.cfg.Dirs.PDFs)
		if err != nil {
			s.log.Warn("PDF download failed", "id", doc.ID, "error", err)
		} else {
			result, err := pdftext.Extract(path)
			if err != nil {
				s.log.Warn("PDF text extraction failed", "id", doc.ID, "error", err)
			} else {
				if result.LikelyScanned {
					s.log.Warn("PDF looks scanned, text quality is low", "id", doc.ID, "quality", result.Quality)
				}

				s.saveText(doc.ID, result.Text)

				return result.Text
			}
		}
	}

	if doc.URLDetalle != "" {
		html, err := s.client.Fetch(ctx, doc.URLDetalle)
		if err != nil {
			s.log.Warn("detail page fetch failed", "id", doc.ID, "error", err)

			return ""
		}

		text := ExtractDetailText(html, doc.URLDetalle)
		s.saveText(doc.ID, text)

		return text
	}

	return ""
}

// saveText keeps a plain-text copy beside the PDFs for reprocessing.
func (s *Source) saveText(docID, text string) {
	if text == "" || s.cfg.Dirs.Text == "" {
		return
	}

	if err := os.MkdirAll(s.cfg.Dirs.Text, 0o755); err != nil {
		s.log.Debug("text dir creation failed", "error", err)

		return
	}

	path := filepath.Join(s.cfg.Dirs.Text, docID+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		s.log.Debug("text save failed", "path", path, "error", err)
	}
}

package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"gacetabo/internal/config"
	"gacetabo/internal/logger"
	"gacetabo/internal/metadata"
	"gacetabo/internal/models"
)

// listingRowClass matches the row containers gazette listings use.
var listingRowClass = regexp.MustCompile(`(?i)documento|norma|item`)

const tituloFallbackLimit = 200

// Lister crawls gazette listing pages and extracts document front matter.
type Lister struct {
	cfg      *config.Config
	log      *logger.Logger
	resolver *metadata.Resolver

	// fetchHTML overrides page retrieval when browser mode is enabled.
	fetchHTML func(pageURL string) (string, error)
}

// NewLister creates a listing crawler.
func NewLister(cfg *config.Config, log *logger.Logger) *Lister {
	return &Lister{
		cfg:      cfg,
		log:      log,
		resolver: metadata.NewResolver(metadata.DefaultTables()),
	}
}

// SetHTMLFetcher routes page retrieval through the given fetcher (browser
// mode) instead of colly.
func (l *Lister) SetHTMLFetcher(fetch func(pageURL string) (string, error)) {
	l.fetchHTML = fetch
}

// ListDocuments crawls the configured number of listing pages and returns
// the discovered documents, deduplicated by ID.
func (l *Lister) ListDocuments(ctx context.Context) ([]models.RawDocument, error) {
	var all []models.RawDocument

	seen := make(map[string]bool)

	for page := 1; page <= l.cfg.Gaceta.Pages; page++ {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		pageURL := fmt.Sprintf("%s?page=%d", l.cfg.Gaceta.ListingURL(), page)

		docs, err := l.listPage(pageURL)
		if err != nil {
			l.log.Warn("listing page failed", "url", pageURL, "error", err)

			continue
		}

		added := 0

		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}

			seen[doc.ID] = true
			all = append(all, doc)
			added++
		}

		l.log.Info("listing page crawled", "page", page, "documents", added)
	}

	return all, nil
}

func (l *Lister) listPage(pageURL string) ([]models.RawDocument, error) {
	if l.fetchHTML != nil {
		html, err := l.fetchHTML(pageURL)
		if err != nil {
			return nil, err
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
		}

		return l.Extract(doc.Selection, pageURL), nil
	}

	var (
		docs     []models.RawDocument
		visitErr error
	)

	c := colly.NewCollector(
		colly.UserAgent(l.cfg.Gaceta.UserAgent),
	)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      l.cfg.Gaceta.RequestDelay(),
	}); err != nil {
		return nil, fmt.Errorf("failed to configure rate limit: %w", err)
	}

	c.OnHTML("html", func(e *colly.HTMLElement) {
		docs = l.Extract(e.DOM, e.Request.URL.String())
	})

	c.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}

	if visitErr != nil {
		return nil, visitErr
	}

	return docs, nil
}

// Extract pulls documents out of a listing page DOM. Rows whose class marks
// them as document entries are preferred; when none exist, every PDF anchor
// becomes a document.
func (l *Lister) Extract(sel *goquery.Selection, baseURL string) []models.RawDocument {
	var docs []models.RawDocument

	sel.Find("tr, div, li").Each(func(_ int, row *goquery.Selection) {
		class, _ := row.Attr("class")
		if !listingRowClass.MatchString(class) {
			return
		}

		if doc, ok := l.extractRow(row, baseURL); ok {
			docs = append(docs, doc)
		}
	})

	if len(docs) > 0 {
		return docs
	}

	sel.Find(`a[href*=".pdf"]`).Each(func(_ int, link *goquery.Selection) {
		if doc, ok := l.extractLink(link, baseURL); ok {
			docs = append(docs, doc)
		}
	})

	return docs
}

func (l *Lister) extractRow(row *goquery.Selection, baseURL string) (models.RawDocument, bool) {
	titulo := ""

	for _, selector := range []string{"h1", "h2", "h3", "h4", "h5", ".titulo", "a"} {
		if t := strings.TrimSpace(row.Find(selector).First().Text()); t != "" {
			titulo = t

			break
		}
	}

	rowText := strings.TrimSpace(row.Text())

	if titulo == "" {
		titulo = truncateListingText(rowText, tituloFallbackLimit)
	}

	urlDetalle := ""
	if href, ok := row.Find("a[href]").First().Attr("href"); ok {
		urlDetalle = absoluteURL(baseURL, href)
	}

	urlPDF := ""
	if href, ok := row.Find(`a[href*=".pdf"]`).First().Attr("href"); ok {
		urlPDF = absoluteURL(baseURL, href)
	}

	if urlPDF == "" && urlDetalle == "" {
		return models.RawDocument{}, false
	}

	fecha := metadata.FindDateCandidate(rowText)

	return models.RawDocument{
		ID:         DocumentID(titulo, fecha, firstNonEmpty(urlPDF, urlDetalle)),
		TituloRaw:  titulo,
		FechaRaw:   fecha,
		SeccionRaw: l.seccionHint(rowText),
		URLPDF:     urlPDF,
		URLDetalle: urlDetalle,
	}, true
}

func (l *Lister) extractLink(link *goquery.Selection, baseURL string) (models.RawDocument, bool) {
	href, ok := link.Attr("href")
	if !ok {
		return models.RawDocument{}, false
	}

	full := absoluteURL(baseURL, href)
	if full == "" {
		return models.RawDocument{}, false
	}

	titulo := strings.TrimSpace(link.Text())

	context := titulo
	if parent := link.Parent(); parent.Length() > 0 {
		context = strings.TrimSpace(parent.Text())
	}

	fecha := metadata.FindDateCandidate(context)

	return models.RawDocument{
		ID:         DocumentID(titulo, fecha, full),
		TituloRaw:  titulo,
		FechaRaw:   fecha,
		SeccionRaw: l.seccionHint(context),
		URLPDF:     full,
	}, true
}

// seccionHint derives a section label from row text, "" when unknown.
func (l *Lister) seccionHint(text string) string {
	tipo := l.resolver.TipoNorma(text, "")
	if tipo == models.TipoNormaDesconocido {
		return ""
	}

	return tipo
}

func absoluteURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	return baseURL.ResolveReference(ref).String()
}

func truncateListingText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

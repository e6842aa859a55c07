package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ExtractDetailText pulls the main body text out of a detail-page HTML
// document. Readability extraction runs first; when it yields nothing the
// page's paragraphs are concatenated instead. Returns "" for unusable pages.
func ExtractDetailText(html, pageURL string) string {
	parsedURL, _ := url.Parse(pageURL)

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var sb strings.Builder

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}

		sb.WriteString(text)
	})

	return sb.String()
}

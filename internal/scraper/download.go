package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// minPDFSize is the smallest body accepted as a real PDF. Error pages served
// with status 200 tend to be tiny.
const minPDFSize = 100

// DownloadPDF fetches a document's PDF into dir as <docID>.pdf. An existing
// non-trivial file is reused without re-downloading. Bodies below the size
// floor are treated as corrupt and not written.
func (c *Client) DownloadPDF(ctx context.Context, urlPDF, docID, dir string) (string, error) {
	if urlPDF == "" {
		return "", ErrNoPDFURL
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create PDF directory: %w", err)
	}

	path := filepath.Join(dir, docID+".pdf")

	if info, err := os.Stat(path); err == nil && info.Size() >= minPDFSize {
		return path, nil
	}

	body, err := c.FetchBytes(ctx, urlPDF)
	if err != nil {
		return "", fmt.Errorf("failed to download PDF %s: %w", urlPDF, err)
	}

	if len(body) < minPDFSize {
		return "", fmt.Errorf("%w: %d bytes from %s", ErrCorruptPDF, len(body), urlPDF)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}

	return path, nil
}

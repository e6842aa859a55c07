package scraper

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"gacetabo/internal/config"
	"gacetabo/internal/logger"
)

// Browser fetches rendered page HTML through headless Chrome for listings
// behind anti-bot checks. Plain HTTP mode should be preferred when it works.
type Browser struct {
	cfg config.BrowserConfig
	log *logger.Logger

	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewBrowser creates a browser fetcher. Call Start before FetchHTML.
func NewBrowser(cfg config.BrowserConfig, log *logger.Logger) *Browser {
	return &Browser{cfg: cfg, log: log}
}

// Start launches Chrome, or connects to the configured control URL.
func (b *Browser) Start() error {
	wsURL := b.cfg.ControlURL

	if wsURL == "" {
		l := launcher.New().Headless(b.cfg.Headless)
		l = l.Set("disable-blink-features", "AutomationControlled")

		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser launch failed: %w", err)
		}

		wsURL = u
		b.lnch = l

		b.log.Info("launched local chrome", "url", wsURL)
	} else {
		b.log.Info("connecting to remote chrome", "url", wsURL)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("browser connect failed: %w", err)
	}

	b.browser = browser

	return nil
}

// FetchHTML navigates to a URL in a stealth page and returns the rendered
// HTML after the load event plus the configured settle time.
func (b *Browser) FetchHTML(pageURL string) (string, error) {
	page, err := stealth.Page(b.browser)
	if err != nil {
		return "", fmt.Errorf("failed to open stealth page: %w", err)
	}

	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			b.log.Debug("page close failed", "error", closeErr)
		}
	}()

	if err := page.Navigate(pageURL); err != nil {
		return "", fmt.Errorf("navigation to %s failed: %w", pageURL, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page load failed: %w", err)
	}

	// Dynamic listings fill in after the load event.
	time.Sleep(time.Duration(b.cfg.WaitMs) * time.Millisecond)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}

	return html, nil
}

// Close shuts down Chrome.
func (b *Browser) Close() error {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}

		b.browser = nil
	}

	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}

	return nil
}

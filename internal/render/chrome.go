// Package render turns web pages into PDF documents with a headless
// browser driven over the Chrome DevTools Protocol.
package render

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/pricelens/pricelist-extractor/internal/domain"
)

// Chrome renders URLs to PDF. Every call launches its own isolated
// browser instance; nothing is shared between requests.
type Chrome struct {
	cfg chromeConfig
}

type chromeConfig struct {
	execPath  string
	timeout   time.Duration
	noSandbox bool
}

// Option configures a Chrome renderer.
type Option func(*chromeConfig)

// WithExecPath sets the path to the Chrome or Chromium executable.
// By default standard locations are searched automatically.
func WithExecPath(path string) Option {
	return func(c *chromeConfig) {
		c.execPath = path
	}
}

// WithTimeout bounds a single render, navigation included. Defaults to
// one minute. A zero or negative value disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *chromeConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. Required when running as
// root, for example inside containers.
func WithNoSandbox() Option {
	return func(c *chromeConfig) {
		c.noSandbox = true
	}
}

// NewChrome creates a renderer with the given options.
func NewChrome(opts ...Option) *Chrome {
	cfg := chromeConfig{timeout: time.Minute}
	for _, o := range opts {
		o(&cfg)
	}
	return &Chrome{cfg: cfg}
}

// RenderPDF loads url in a fresh headless browser and returns the page
// printed to PDF. The browser is torn down on every exit path.
func (c *Chrome) RenderPDF(ctx context.Context, url string) ([]byte, error) {
	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", "new"),
	)
	if c.cfg.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.cfg.execPath))
	}
	if c.cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, domain.RenderError("failed to acquire document", err)
	}

	return buf, nil
}

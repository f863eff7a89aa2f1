package domain

import "context"

// Renderer defines the interface for turning a web page into a PDF
type Renderer interface {
	// RenderPDF navigates a headless browser to url and returns the
	// rendered page as PDF bytes. The browser instance is torn down
	// before the call returns, on success and on failure.
	RenderPDF(ctx context.Context, url string) ([]byte, error)
}

// TextExtractor defines the interface for pulling plain text out of a PDF
type TextExtractor interface {
	Text(path string) (string, error)
}

// PriceListClient defines the interface for the external completion API
type PriceListClient interface {
	// ExtractPriceList submits the document with a fixed price-list
	// instruction and returns the Markdown text of the top choice.
	ExtractPriceList(ctx context.Context, doc Document) (string, error)
}

// Package pdfpeek is the public entry point for embedding the first-page
// extractor as a library.
package pdfpeek

import (
	"context"

	"github.com/pdfpeek/pdfpeek/internal/config"
	"github.com/pdfpeek/pdfpeek/internal/domain"
	"github.com/pdfpeek/pdfpeek/internal/extract"
	"github.com/pdfpeek/pdfpeek/internal/observability"
)

// Re-export result types for the public API.
type (
	ExtractionResult = domain.ExtractionResult
	ImageRecord      = domain.ImageRecord
)

// Config holds client options.
type Config struct {
	// MinImageBytes is the smallest embedded image kept; zero means the
	// built-in default.
	MinImageBytes int
	// LogLevel is a zerolog level name; empty means warn.
	LogLevel string
}

// Client extracts first-page content from PDF documents.
type Client struct {
	svc *extract.Service
}

// New creates a client with the given options.
func New(cfg Config) *Client {
	min := cfg.MinImageBytes
	if min == 0 {
		min = config.DefaultMinImageBytes
	}
	log := observability.NewLogger(observability.LogConfig{Level: cfg.LogLevel, Service: "pdfpeek"})
	return &Client{svc: extract.NewService(min, log)}
}

// NewFromEnv creates a client configured from the environment, including an
// optional .env file.
func NewFromEnv() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := observability.NewLogger(observability.LogConfig{Level: cfg.LogLevel, Service: "pdfpeek"})
	return &Client{svc: extract.NewService(cfg.MinImageBytes, log)}, nil
}

// Extract pulls the text and, when includeImages is set, the embedded images
// of the first page of the PDF at path.
func (c *Client) Extract(ctx context.Context, path string, includeImages bool) (*ExtractionResult, error) {
	return c.svc.FirstPage(ctx, path, includeImages)
}

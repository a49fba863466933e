// Package extract implements the first-page extraction pipeline.
package extract

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdfpeek/pdfpeek/internal/domain"
	"github.com/pdfpeek/pdfpeek/internal/pdf"
)

// Source is the slice of document behavior the service needs.
// *pdf.Document satisfies it.
type Source interface {
	PageCount() int
	Text(page int) (string, error)
	Images(page int) ([]pdf.RawImage, error)
	Close() error
}

// Opener opens the document at path.
type Opener func(path string) (Source, error)

// Service extracts the first page of a document. Each call is a stateless
// one-shot transformation; the service itself holds only configuration.
type Service struct {
	open          Opener
	minImageBytes int
	log           zerolog.Logger
}

// NewService returns a Service backed by the real PDF libraries.
func NewService(minImageBytes int, log zerolog.Logger) *Service {
	return NewServiceWithOpener(func(path string) (Source, error) {
		return pdf.Open(path)
	}, minImageBytes, log)
}

// NewServiceWithOpener returns a Service over a custom document opener.
func NewServiceWithOpener(open Opener, minImageBytes int, log zerolog.Logger) *Service {
	return &Service{open: open, minImageBytes: minImageBytes, log: log}
}

// FirstPage extracts the text and, when includeImages is set, the embedded
// images of page one. The document handle is closed on every path, and no
// partial result is returned on failure. includeImages=false skips all image
// work entirely.
func (s *Service) FirstPage(ctx context.Context, path string, includeImages bool) (*domain.ExtractionResult, error) {
	doc, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if doc.PageCount() == 0 {
		return nil, domain.PageError("PDF has no pages", nil)
	}

	text, err := doc.Text(0)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	s.log.Debug().Int("chars", len(text)).Msg("extracted first page text")

	records := []domain.ImageRecord{}
	if includeImages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = s.collectImages(doc)
	}

	return &domain.ExtractionResult{
		Text:       text,
		Images:     records,
		ImageCount: len(records),
		Filename:   filepath.Base(path),
	}, nil
}

// collectImages filters and base64-encodes the first page's embedded images.
// The returned slice is never nil, so the JSON report always carries an image
// array. A failed enumeration degrades to an empty image list instead of
// failing the whole run, since the text is still worth returning.
func (s *Service) collectImages(doc Source) []domain.ImageRecord {
	records := []domain.ImageRecord{}

	raw, err := doc.Images(0)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not extract images")
		return records
	}
	for _, img := range raw {
		if len(img.Data) < s.minImageBytes {
			s.log.Debug().Int("bytes", len(img.Data)).Str("format", img.Format).Msg("skipping small image")
			continue
		}
		records = append(records, domain.ImageRecord{
			Data:      base64.StdEncoding.EncodeToString(img.Data),
			Format:    img.Format,
			Index:     len(records) + 1,
			SizeBytes: len(img.Data),
		})
	}

	s.log.Debug().Int("kept", len(records)).Int("seen", len(raw)).Msg("collected images")
	return records
}

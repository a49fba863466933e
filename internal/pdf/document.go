// Package pdf wraps the parsing libraries behind a small document handle.
//
// Page access and text extraction go through go-fitz (MuPDF). Raw embedded
// image enumeration goes through pdfcpu, which hands back image streams in
// their native encoding without re-encoding them.
package pdf

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// Document is an open PDF handle.
type Document struct {
	path string
	doc  *fitz.Document
}

// Open validates and opens the document at path.
func Open(path string) (*Document, error) {
	if err := NewValidator().ValidatePath(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.DocumentError("failed to open PDF", err)
	}

	return &Document{path: path, doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// Text extracts the plain text of the zero-indexed page.
func (d *Document) Text(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", domain.DocumentError(fmt.Sprintf("failed to extract text from page %d", page+1), err)
	}
	return text, nil
}

// Close releases the underlying MuPDF handle. Safe to call more than once.
func (d *Document) Close() error {
	if d.doc == nil {
		return nil
	}
	err := d.doc.Close()
	d.doc = nil
	return err
}

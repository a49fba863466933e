// Package domain holds the result types and error taxonomy shared by the
// extraction pipeline and its callers.
package domain

// ImageRecord describes one embedded image that survived the size filter.
// Index is 1-based and follows the order in which the page references its
// images. Data is the base64 encoding of the raw bytes; SizeBytes is the
// length of those raw bytes, not of the encoding.
type ImageRecord struct {
	Data      string `json:"data"`
	Format    string `json:"format"`
	Index     int    `json:"index"`
	SizeBytes int    `json:"size_bytes"`
}

// ExtractionResult is the outcome of a single first-page extraction run.
// It is immutable after construction and owned by the caller.
type ExtractionResult struct {
	Text       string        `json:"text"`
	Images     []ImageRecord `json:"images"`
	ImageCount int           `json:"image_count"`
	Filename   string        `json:"filename"`
}

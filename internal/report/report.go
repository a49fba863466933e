// Package report renders an extraction result as markdown or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// JSON renders the result as indented JSON with the wire shape
// {text, images, image_count, filename}. A result without images encodes as
// an empty images array, never null.
func JSON(result *domain.ExtractionResult) (string, error) {
	r := *result
	if r.Images == nil {
		r.Images = []domain.ImageRecord{}
	}
	out, err := json.MarshalIndent(&r, "", "  ")
	if err != nil {
		return "", domain.IOError("failed to encode result as JSON", err)
	}
	return string(out), nil
}

// Text renders the result as a human-readable markdown report: the extracted
// text re-flowed into paragraphs, then one section per image with its
// metadata and full base64 payload.
func Text(result *domain.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PDF Extraction: %s\n\n", result.Filename)

	if result.Text != "" {
		b.WriteString("## Extracted Text\n\n")
		for _, paragraph := range strings.Split(result.Text, "\n\n") {
			clean := reflow(paragraph)
			if clean == "" {
				continue
			}
			b.WriteString(clean)
			b.WriteString("\n\n")
		}
	} else {
		b.WriteString("## No Text Found\n\n")
	}

	if result.ImageCount > 0 {
		fmt.Fprintf(&b, "## Images (%d found)\n\n", result.ImageCount)
		for _, img := range result.Images {
			fmt.Fprintf(&b, "### Image %d\n\n", img.Index)
			fmt.Fprintf(&b, "- **Format**: %s\n", strings.ToUpper(img.Format))
			fmt.Fprintf(&b, "- **Size**: %d bytes\n", img.SizeBytes)
			fmt.Fprintf(&b, "- **Base64 length**: %d characters\n\n", len(img.Data))
			fmt.Fprintf(&b, "![Image %d](data:image/%s;base64,%s)\n\n", img.Index, img.Format, img.Data)
		}
	} else {
		b.WriteString("## No Images Found\n\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// reflow collapses the line breaks inside a paragraph into single spaces.
func reflow(paragraph string) string {
	var lines []string
	for _, line := range strings.Split(paragraph, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

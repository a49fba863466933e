package pdf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// RawImage is an embedded image in its native encoding.
type RawImage struct {
	Data   []byte
	Format string // normalized tag: "jpeg", "png", "tiff", ...
	ObjNr  int    // PDF object number, used for stable ordering
}

// Images enumerates the embedded images referenced by the zero-indexed page,
// ordered by ascending object number. go-fitz does not expose raw image
// streams, so this goes through pdfcpu on a separate read of the file; the
// extra open only happens when image extraction is actually requested.
func (d *Document) Images(page int) ([]RawImage, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, domain.IOError("failed to reopen document for image extraction", err)
	}
	defer f.Close()

	pages, err := api.ExtractImagesRaw(f, []string{strconv.Itoa(page + 1)}, model.NewDefaultConfiguration())
	if err != nil {
		return nil, domain.DocumentError(fmt.Sprintf("failed to enumerate images on page %d", page+1), err)
	}

	return readRawImages(pages), nil
}

// readRawImages reads each extracted image stream into memory. An unreadable
// object is logged and skipped so one corrupt stream does not discard the
// rest of the page's images.
func readRawImages(pages []map[int]model.Image) []RawImage {
	var images []RawImage
	for _, pageImages := range pages {
		for objNr, img := range pageImages {
			data, err := io.ReadAll(img)
			if err != nil {
				log.Warn().Err(err).Int("object", objNr).Msg("skipping unreadable image object")
				continue
			}
			images = append(images, RawImage{
				Data:   data,
				Format: normalizeFormat(img.FileType),
				ObjNr:  objNr,
			})
		}
	}

	sort.Slice(images, func(i, j int) bool { return images[i].ObjNr < images[j].ObjNr })

	return images
}

// normalizeFormat maps pdfcpu file type tags onto the conventional names.
func normalizeFormat(fileType string) string {
	switch ft := strings.ToLower(fileType); ft {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	case "":
		return "unknown"
	default:
		return ft
	}
}

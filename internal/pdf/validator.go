package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// Validator checks input paths before any parsing work happens.
type Validator struct{}

// NewValidator creates a validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePath verifies that path points at a readable PDF file.
func (v *Validator) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.DocumentError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DocumentError(fmt.Sprintf("file not found: %s", path), err)
		}
		return domain.DocumentError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.DocumentError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return domain.DocumentError(fmt.Sprintf("file must be a PDF (has extension %q)", ext), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.DocumentError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	f.Close()

	return nil
}

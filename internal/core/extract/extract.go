// Package extract pulls plain text out of the supported document formats.
// PDF extraction additionally produces a page map so chunk offsets can be
// traced back to page numbers.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/markdave123-py/VectorVault/internal/models"
)

// Result is the outcome of extracting one file. PageMap is nil for
// non-paginated formats.
type Result struct {
	Text    string
	PageMap []models.PageMapEntry
}

// SupportedExtensions lists the file types the ingestion pipeline accepts.
var SupportedExtensions = []string{".pdf", ".txt", ".md", ".docx"}

// Supported reports whether the file at path has a supported extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// File extracts text from the file at path, choosing the parser by extension.
func File(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	case ".txt", ".md":
		return extractPlain(path)
	default:
		return Result{}, fmt.Errorf("unsupported file type: %s", path)
	}
}

func extractPlain(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %q: %w", path, err)
	}
	return Result{Text: string(data)}, nil
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	// CJK Unified Ideographs, CJK punctuation and full-width forms.
	cjkGap = regexp.MustCompile(`([\x{4e00}-\x{9fff}\x{3000}-\x{303f}\x{ff00}-\x{ffef}])[ \t]+([\x{4e00}-\x{9fff}\x{3000}-\x{303f}\x{ff00}-\x{ffef}])`)
)

// cleanCJKText removes common PDF extraction artifacts in Chinese text:
// spaces wedged between CJK characters and runs of blank lines.
func cleanCJKText(text string) string {
	text = blankLines.ReplaceAllString(text, "\n\n")
	// Applied twice so consecutive gaps collapse (A B C -> AB C -> ABC).
	text = cjkGap.ReplaceAllString(text, "$1$2")
	text = cjkGap.ReplaceAllString(text, "$1$2")
	return strings.TrimSpace(text)
}

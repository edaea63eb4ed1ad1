package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/VectorVault/internal/models"
)

// extractPDF joins all pages into a single document and records the byte
// offset at which each page's content begins. Pages with no extractable text
// are skipped and get no page map entry.
func extractPDF(path string) (Result, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer f.Close()

	var fullText strings.Builder
	var pageMap []models.PageMapEntry

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, fmt.Errorf("extract pdf page %d of %q: %w", i, path, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		text = cleanCJKText(text)
		pageMap = append(pageMap, models.PageMapEntry{Page: i, StartChar: fullText.Len()})
		fullText.WriteString(text)
		fullText.WriteString("\n")
	}

	return Result{
		Text:    strings.TrimRight(fullText.String(), "\n"),
		PageMap: pageMap,
	}, nil
}

package extract

import (
	"fmt"
	"os"

	"code.sajari.com/docconv"
)

func extractDOCX(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open docx %q: %w", path, err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return Result{}, fmt.Errorf("docconv: convert %q: %w", path, err)
	}
	return Result{Text: text}, nil
}

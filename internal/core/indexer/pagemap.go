package indexer

import (
	"sort"

	"github.com/markdave123-py/VectorVault/internal/models"
)

// FindPage returns the page containing the given character offset, or nil when
// the document has no page map or the offset precedes the first entry. Entries
// must be sorted by StartChar, which is how extraction produces them.
func FindPage(startChar int, pageMap []models.PageMapEntry) *int {
	if len(pageMap) == 0 {
		return nil
	}
	// First entry strictly past startChar; the one before it owns the offset.
	i := sort.Search(len(pageMap), func(i int) bool {
		return pageMap[i].StartChar > startChar
	})
	if i == 0 {
		return nil
	}
	page := pageMap[i-1].Page
	return &page
}

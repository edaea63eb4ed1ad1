package splitter

import (
	"unicode/utf8"
)

// MergeSmallChunks merges chunks below minSize runes into a neighbour without
// letting any merged chunk exceed maxSize runes.
//
// Scan left to right: a small chunk is appended (joined by a newline) to the
// previously accumulated chunk when the result stays within maxSize, and kept
// standalone otherwise. If the first chunk is still too small afterwards it
// is merged forward into the second under the same constraint. minSize <= 0
// disables merging. A chunk that cannot be merged without exceeding maxSize
// stays under-sized; that is an accepted trade-off.
func MergeSmallChunks(chunks []string, minSize, maxSize int) []string {
	if len(chunks) == 0 || minSize <= 0 {
		return chunks
	}

	result := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if len(result) > 0 && utf8.RuneCountInString(chunk) < minSize {
			combined := result[len(result)-1] + "\n" + chunk
			if utf8.RuneCountInString(combined) <= maxSize {
				result[len(result)-1] = combined
				continue
			}
		}
		result = append(result, chunk)
	}

	if len(result) > 1 && utf8.RuneCountInString(result[0]) < minSize {
		combined := result[0] + "\n" + result[1]
		if utf8.RuneCountInString(combined) <= maxSize {
			merged := make([]string, 0, len(result)-1)
			merged = append(merged, combined)
			merged = append(merged, result[2:]...)
			result = merged
		}
	}

	return result
}

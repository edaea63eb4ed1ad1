// Package splitter cuts document text into overlapping, boundary-respecting
// chunks using a recursive separator hierarchy.
//
// Separators are tried from coarsest to finest; the final empty-string
// separator falls back to character-level splitting, which guarantees
// progress even when chunkSize is smaller than any natural text unit.
// Separators are kept attached to the END of the preceding piece so that
// sentence punctuation (including ideographic full stops) stays with its
// sentence. Lengths are measured in runes so CJK text is not over-split.
package splitter

import (
	"strings"
	"unicode/utf8"

	"github.com/markdave123-py/VectorVault/internal/models"
)

// DefaultSeparators is the hierarchy used when none is supplied:
// paragraph > line > sentence end (ZH/EN) > clause (ZH) > space > char.
var DefaultSeparators = []string{"\n\n", "\n", "。", "！", "？", "；", ". ", "，", " ", ""}

// Options tunes the splitter.
type Options struct {
	ChunkSize    int      // maximum chunk length in runes (<= 0 falls back to 300)
	ChunkOverlap int      // overlap in runes carried between consecutive chunks (negative falls back to 80)
	MinChunkSize int      // chunks below this are merged with a neighbour; <= 0 disables merging
	Separators   []string // hierarchy, coarsest first (nil falls back to DefaultSeparators)
}

const (
	defaultChunkSize    = 300
	defaultChunkOverlap = 80
)

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.ChunkOverlap < 0 {
		o.ChunkOverlap = defaultChunkOverlap
	}
	if o.Separators == nil {
		o.Separators = DefaultSeparators
	}
	return o
}

// Split cuts text into chunks with positional metadata. ChunkIndex values are
// contiguous from 0; StartChar/EndChar are byte offsets into text where the
// chunk occurs verbatim (merged chunks that no longer occur verbatim fall
// back to the current search position).
func Split(text string, opts Options) []models.Chunk {
	opts = opts.withDefaults()

	raw := splitRecursive(text, opts.Separators, opts.ChunkSize, opts.ChunkOverlap)
	raw = MergeSmallChunks(raw, opts.MinChunkSize, opts.ChunkSize)

	chunks := make([]models.Chunk, 0, len(raw))
	searchStart := 0
	for i, chunkText := range raw {
		start := indexFrom(text, chunkText, searchStart)
		if start == -1 {
			start = searchStart
		}
		end := start + len(chunkText)

		chunks = append(chunks, models.Chunk{
			Text:       chunkText,
			ChunkIndex: i,
			StartChar:  start,
			EndChar:    end,
		})
		if start+1 > searchStart {
			searchStart = start + 1
		}
	}
	return chunks
}

// indexFrom is strings.Index starting the scan at byte offset from.
func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx == -1 {
		return -1
	}
	return from + idx
}

// splitRecursive splits text with the first separator present in it, greedily
// packs the resulting pieces into chunks of at most chunkSize runes carrying
// chunkOverlap runes of trailing context forward, and recurses with the finer
// separators into any chunk that is still too long.
func splitRecursive(text string, separators []string, chunkSize, chunkOverlap int) []string {
	if utf8.RuneCountInString(text) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	separator := ""
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	parts := splitKeepingSeparator(text, separator)

	var chunks []string
	var current []string
	currentLen := 0

	for _, part := range parts {
		partLen := utf8.RuneCountInString(part)

		if currentLen+partLen > chunkSize && len(current) > 0 {
			merged := strings.TrimSpace(strings.Join(current, ""))
			if merged != "" {
				chunks = append(chunks, merged)
			}

			// Walk backwards through the placed pieces to seed the next chunk
			// with up to chunkOverlap runes of context. The overlap is capped
			// at half the closed chunk so tiny chunks don't repeat themselves.
			effectiveOverlap := chunkOverlap
			if half := currentLen / 2; half < effectiveOverlap {
				effectiveOverlap = half
			}
			var overlap []string
			overlapLen := 0
			for j := len(current) - 1; j >= 0; j-- {
				pl := utf8.RuneCountInString(current[j])
				if overlapLen+pl > effectiveOverlap {
					break
				}
				overlap = append([]string{current[j]}, overlap...)
				overlapLen += pl
			}
			current = overlap
			currentLen = overlapLen
		}

		current = append(current, part)
		currentLen += partLen
	}

	if len(current) > 0 {
		merged := strings.Join(current, "")
		if strings.TrimSpace(merged) != "" {
			if utf8.RuneCountInString(merged) > chunkSize && len(remaining) > 0 {
				chunks = append(chunks, splitRecursive(merged, remaining, chunkSize, chunkOverlap)...)
			} else {
				chunks = append(chunks, strings.TrimSpace(merged))
			}
		}
	}

	// A closed chunk can still exceed chunkSize when a single piece was larger
	// than the limit; recurse into those with the finer separators.
	final := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if utf8.RuneCountInString(chunk) > chunkSize && len(remaining) > 0 {
			final = append(final, splitRecursive(chunk, remaining, chunkSize, chunkOverlap)...)
		} else {
			final = append(final, chunk)
		}
	}
	return final
}

// splitKeepingSeparator splits text by separator, keeping the separator
// attached to the end of the preceding piece. The empty separator splits
// into individual characters. Whitespace-only pieces are dropped.
func splitKeepingSeparator(text, separator string) []string {
	if separator == "" {
		parts := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			s := string(r)
			if strings.TrimSpace(s) == "" {
				continue
			}
			parts = append(parts, s)
		}
		return parts
	}

	raw := strings.Split(text, separator)
	parts := make([]string, 0, len(raw))
	for i, part := range raw {
		if i < len(raw)-1 {
			part += separator
		} else if part == "" {
			continue
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

package index

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinChunkLen is the minimum trimmed length, in runes, a paragraph must
// have to become a chunk. Shorter paragraphs are too noisy to retrieve on
// their own.
const DefaultMinChunkLen = 50

const paragraphSeparator = "\n\n"

// Chunker splits a note's full text into retrievable paragraph chunks.
// It is a pure function of its input: no side effects, deterministic.
type Chunker struct {
	MinChunkLen int
}

// NewChunker creates a Chunker. A non-positive minChunkLen selects the default.
func NewChunker(minChunkLen int) *Chunker {
	if minChunkLen <= 0 {
		minChunkLen = DefaultMinChunkLen
	}
	return &Chunker{MinChunkLen: minChunkLen}
}

// Split splits text on paragraph boundaries (two consecutive newlines), trims
// each paragraph, and drops paragraphs shorter than MinChunkLen. Paragraph
// order is preserved; the position in the returned slice is the chunk's
// sequence number. Empty, whitespace-only, or all-short input yields nil.
//
// A single paragraph with no blank line stays one chunk however long it is;
// the chunker does not cap chunk length.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	for _, paragraph := range strings.Split(text, paragraphSeparator) {
		paragraph = strings.TrimSpace(paragraph)
		if utf8.RuneCountInString(paragraph) < c.MinChunkLen {
			continue
		}
		chunks = append(chunks, paragraph)
	}
	return chunks
}

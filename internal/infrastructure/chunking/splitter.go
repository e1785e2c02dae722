package chunking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Splitter cuts text into pieces of at most ChunkSize runes, breaking on whitespace so that
// no word straddles two pieces. A single token longer than ChunkSize is cut hard.
type Splitter struct {
	ChunkSize int
}

func NewSplitter(chunkSize int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 6000
	}
	return &Splitter{ChunkSize: chunkSize}
}

func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	out := make([]string, 0, utf8.RuneCountInString(text)/s.ChunkSize+1)
	for text != "" {
		if utf8.RuneCountInString(text) <= s.ChunkSize {
			out = append(out, text)
			break
		}

		cut := byteOffset(text, s.ChunkSize)
		split := strings.LastIndexFunc(text[:cut], unicode.IsSpace)
		if next, _ := utf8.DecodeRuneInString(text[cut:]); unicode.IsSpace(next) {
			split = cut
		}
		if split <= 0 {
			split = cut
		}
		if chunk := strings.TrimSpace(text[:split]); chunk != "" {
			out = append(out, chunk)
		}
		text = strings.TrimSpace(text[split:])
	}
	return out
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

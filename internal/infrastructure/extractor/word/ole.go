package word

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

const (
	wordDocumentStream = "WordDocument"
	minRunRunes        = 4
)

var errNoWordStream = errors.New("WordDocument stream not found")

// readOLE recovers text from a Word 97-2003 file. Rather than walking the piece table it
// scans the WordDocument stream for printable runs, decoding it both as UTF-16LE and as
// Windows-1252 and keeping whichever decoding yields more letters.
func readOLE(data []byte) (string, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open compound file: %w", err)
	}

	var stream []byte
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != wordDocumentStream {
			continue
		}
		stream, err = io.ReadAll(io.LimitReader(entry, entry.Size))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", wordDocumentStream, err)
		}
		break
	}
	if stream == nil {
		return "", errNoWordStream
	}
	return scrapeWordStream(stream), nil
}

func scrapeWordStream(stream []byte) string {
	wideInput := stream
	if len(wideInput)%2 == 1 {
		wideInput = wideInput[:len(wideInput)-1]
	}
	wide, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder().Bytes(wideInput)
	if err != nil {
		wide = nil
	}
	narrow, err := charmap.Windows1252.NewDecoder().Bytes(stream)
	if err != nil {
		narrow = nil
	}

	wideText := printableRuns(string(wide))
	narrowText := printableRuns(string(narrow))
	if letterCount(wideText) >= letterCount(narrowText) {
		return wideText
	}
	return narrowText
}

// printableRuns keeps runs of at least minRunRunes text runes that contain a letter. Word
// marks paragraph ends with CR and table cells with BEL.
func printableRuns(s string) string {
	var out strings.Builder
	var run []rune
	flush := func() {
		if len(run) >= minRunRunes && hasLetter(run) {
			if out.Len() > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(strings.TrimSpace(string(run)))
		}
		run = run[:0]
	}
	for _, r := range s {
		switch {
		case r == '\r' || r == '\x07' || r == '\x0b':
			flush()
		case isTextRune(r):
			run = append(run, r)
		default:
			flush()
		}
	}
	flush()
	return out.String()
}

// isTextRune accepts Latin, Greek and Cyrillic letters plus common punctuation. Wider
// ranges would let 8-bit text misread as UTF-16 pass as CJK.
func isTextRune(r rune) bool {
	switch {
	case r == '\t' || r == ' ':
		return true
	case r < 0x20 || r == 0x7f:
		return false
	case r < 0x0250:
		return unicode.IsPrint(r)
	case r >= 0x0370 && r < 0x0530:
		return unicode.IsLetter(r)
	case r >= 0x2010 && r <= 0x2027:
		return true
	}
	return false
}

func hasLetter(run []rune) bool {
	for _, r := range run {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

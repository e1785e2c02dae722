package extractor

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds compatibility forms (ligatures, full-width letters) with NFKC, turns
// non-breaking and other horizontal spaces into a single space, collapses runs of blank
// lines and trims the result. Line breaks are kept because section headings rely on them.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	newlines := 0
	for _, r := range text {
		switch {
		case r == '\n':
			pendingSpace = false
			newlines++
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsControl(r) || r == '\ufeff':
			// dropped
		default:
			if sb.Len() > 0 {
				switch {
				case newlines > 1:
					sb.WriteString("\n\n")
				case newlines == 1:
					sb.WriteByte('\n')
				case pendingSpace:
					sb.WriteByte(' ')
				}
			}
			sb.WriteRune(r)
			pendingSpace = false
			newlines = 0
		}
	}
	return sb.String()
}

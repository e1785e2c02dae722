package pdf

import (
	"strconv"
	"strings"
)

// kerningGap is the TJ displacement (thousandths of text space) past which a gap is
// rendered as a word break.
const kerningGap = -200

// scrapeContentStream recovers the text shown by a page content stream. Only literal strings
// are decoded (PDFDocEncoding read as Latin-1); hex strings usually carry glyph ids of
// embedded fonts and are skipped.
func scrapeContentStream(data []byte) string {
	var sb strings.Builder
	var pending strings.Builder
	inArray := false

	newline := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}
	space := func() {
		if s := sb.String(); s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
			sb.WriteByte(' ')
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			text, next := readLiteral(data, i)
			pending.WriteString(text)
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '<':
			end := indexFrom(data, i, '>')
			i = end + 1
		case c == '>':
			i++
		case c == '%':
			i = indexFrom(data, i, '\n') + 1
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case isWhitespace(c) || c == '{' || c == '}':
			i++
		case c == '/':
			_, i = readToken(data, i+1)
		default:
			token, next := readToken(data, i)
			if next == i {
				next = i + 1
			}
			i = next

			if n, err := strconv.ParseFloat(token, 64); err == nil {
				if inArray && n <= kerningGap {
					pending.WriteByte(' ')
				}
				continue
			}

			switch token {
			case "Tj", "TJ":
				sb.WriteString(pending.String())
			case "'", "\"":
				newline()
				sb.WriteString(pending.String())
			case "T*", "ET":
				newline()
			case "Td", "TD", "Tm":
				space()
			case "BI":
				i = skipInlineImage(data, i)
			}
			pending.Reset()
		}
	}
	return strings.TrimSpace(sb.String())
}

// readLiteral decodes a balanced "( ... )" string starting at data[start].
func readLiteral(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			e := data[i]
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				if e == '\r' && i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				if e >= '0' && e <= '7' {
					val := 0
					for k := 0; k < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7'; k++ {
						val = val*8 + int(data[i]-'0')
						i++
					}
					sb.WriteRune(rune(byte(val)))
					continue
				}
				sb.WriteRune(rune(e))
			}
			i++
			continue
		case c == '(':
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		default:
			sb.WriteRune(rune(c))
		}
		i++
	}
	return sb.String(), len(data)
}

func readToken(data []byte, start int) (string, int) {
	i := start
	for i < len(data) && !isWhitespace(data[i]) && !isDelimiter(data[i]) {
		i++
	}
	return string(data[start:i]), i
}

func skipInlineImage(data []byte, from int) int {
	for i := from; i+2 <= len(data); i++ {
		if data[i] == 'E' && data[i+1] == 'I' && (i == 0 || isWhitespace(data[i-1])) &&
			(i+2 == len(data) || isWhitespace(data[i+2])) {
			return i + 2
		}
	}
	return len(data)
}

func indexFrom(data []byte, from int, b byte) int {
	for i := from; i < len(data); i++ {
		if data[i] == b {
			return i
		}
	}
	return len(data)
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

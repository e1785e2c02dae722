package detect

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Buzzwords returns the vocabulary entries found in text, in vocabulary order, without duplicates.
// Entries containing whitespace are phrases and match as plain substrings; every other entry must
// be delimited by non-alphanumeric characters, so "java" is not found inside "javascript".
func Buzzwords(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(vocabulary))
	found := make([]string, 0, 8)
	for _, entry := range vocabulary {
		term := strings.ToLower(strings.TrimSpace(entry))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		var hit bool
		if strings.ContainsFunc(term, unicode.IsSpace) {
			hit = strings.Contains(lower, term)
		} else {
			hit = containsDelimited(lower, term)
		}
		if hit {
			seen[term] = struct{}{}
			found = append(found, term)
		}
	}
	return found
}

func containsDelimited(text, term string) bool {
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if !alnumBefore(text, start) && !alnumAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

func alnumBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func alnumAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

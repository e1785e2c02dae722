// Package dictionary flags words missing from a plain word list. It is fast and needs no
// server, but it flags proper nouns and jargon and misses real-word errors.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const Name = "dictionary"

type Checker struct {
	words map[string]struct{}
}

// Load reads a word list with one entry per line; blank lines and lines starting with '#'
// are ignored.
func Load(path string) (*Checker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Checker, error) {
	words := make(map[string]struct{}, 1<<16)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read dictionary", fmt.Errorf("word list is empty"))
	}
	return &Checker{words: words}, nil
}

func New(words ...string) *Checker {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Checker{words: set}
}

func (c *Checker) Name() string {
	return Name
}

// Check tokenizes on anything that is not a letter or apostrophe. Tokens shorter than two
// letters and all-caps acronyms are not checked; a trailing possessive "'s" is tolerated.
func (c *Checker) Check(ctx context.Context, text string) (domain.SpellingReport, error) {
	seen := make(map[string]struct{})
	words := make([]string, 0, 8)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '’'
	})
	for i, token := range tokens {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return domain.SpellingReport{}, err
			}
		}
		token = strings.Trim(strings.ReplaceAll(token, "’", "'"), "'")
		if len([]rune(token)) < 2 || isAcronym(token) {
			continue
		}
		word := strings.ToLower(token)
		if c.known(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}

	return domain.SpellingReport{
		ErrorCount: len(words),
		Words:      words,
		Available:  true,
		Backend:    Name,
	}, nil
}

func (c *Checker) known(word string) bool {
	if _, ok := c.words[word]; ok {
		return true
	}
	if base, ok := strings.CutSuffix(word, "'s"); ok {
		_, found := c.words[base]
		return found
	}
	return false
}

func isAcronym(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Rules is the static detector configuration. Scoring weights live in package scoring.
type Rules struct {
	SectionKeywords        map[Section][]string `yaml:"section_keywords" json:"section_keywords"`
	Buzzwords              []string             `yaml:"buzzwords" json:"buzzwords"`
	ConsumerEmailDomains   []string             `yaml:"consumer_email_domains" json:"consumer_email_domains"`
	IdealWordsMin          int                  `yaml:"ideal_words_min" json:"ideal_words_min"`
	IdealWordsMax          int                  `yaml:"ideal_words_max" json:"ideal_words_max"`
	SpellErrorCap          int                  `yaml:"spell_error_cap" json:"spell_error_cap"`
	MinContentChars        int                  `yaml:"min_content_chars" json:"min_content_chars"`
	WordsPerPage           int                  `yaml:"words_per_page" json:"words_per_page"`
	LongResumeMaxPages     int                  `yaml:"long_resume_max_pages" json:"long_resume_max_pages"`
	LongResumeWarningWords int                  `yaml:"long_resume_warning_words" json:"long_resume_warning_words"`
}

// Normalize lowercases vocabularies and drops blanks and duplicates.
func (r Rules) Normalize() Rules {
	out := r
	out.SectionKeywords = make(map[Section][]string, len(r.SectionKeywords))
	for section, keywords := range r.SectionKeywords {
		out.SectionKeywords[Section(strings.ToLower(string(section)))] = normalizeTerms(keywords)
	}
	out.Buzzwords = normalizeTerms(r.Buzzwords)
	out.ConsumerEmailDomains = normalizeTerms(r.ConsumerEmailDomains)
	for i, d := range out.ConsumerEmailDomains {
		out.ConsumerEmailDomains[i] = strings.TrimPrefix(d, "@")
	}
	return out
}

func (r Rules) Validate() error {
	var errs []error
	for _, section := range Sections {
		if len(r.SectionKeywords[section]) == 0 {
			errs = append(errs, fmt.Errorf("section %q has no keywords", section))
		}
	}
	for section := range r.SectionKeywords {
		if !isKnownSection(section) {
			errs = append(errs, fmt.Errorf("unknown section %q", section))
		}
	}
	if r.IdealWordsMin <= 0 || r.IdealWordsMax < r.IdealWordsMin {
		errs = append(errs, fmt.Errorf("ideal word band [%d,%d] is invalid", r.IdealWordsMin, r.IdealWordsMax))
	}
	if r.SpellErrorCap < 0 {
		errs = append(errs, fmt.Errorf("spell_error_cap must be >= 0, got %d", r.SpellErrorCap))
	}
	if r.MinContentChars < 0 {
		errs = append(errs, fmt.Errorf("min_content_chars must be >= 0, got %d", r.MinContentChars))
	}
	if r.WordsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("words_per_page must be > 0, got %d", r.WordsPerPage))
	}
	if len(errs) > 0 {
		return WrapError(ErrInvalidInput, "validate rules", errors.Join(errs...))
	}
	return nil
}

func isKnownSection(s Section) bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

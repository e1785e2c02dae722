// Package detect holds the résumé heuristics. Every detector is a pure function of the text
// and the static rules, so detectors may run in any order or concurrently.
package detect

import (
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// Sections reports, for each canonical section, whether any of its keywords occurs in text.
func Sections(text string, keywords map[domain.Section][]string) domain.SectionFlags {
	lower := strings.ToLower(text)
	flags := make(domain.SectionFlags, len(domain.Sections))
	for _, section := range domain.Sections {
		flags[section] = containsAny(lower, keywords[section])
	}
	return flags
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

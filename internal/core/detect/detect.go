package detect

import (
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// Signals bundles every detector output for one text.
type Signals struct {
	Sections        domain.SectionFlags
	Contact         domain.ContactInfo
	ExperienceYears int
	Buzzwords       []string
	WordCount       int
}

func Run(text string, rules domain.Rules) Signals {
	return Signals{
		Sections:        Sections(text, rules.SectionKeywords),
		Contact:         Contact(text, rules.ConsumerEmailDomains),
		ExperienceYears: ExperienceYears(text),
		Buzzwords:       Buzzwords(text, rules.Buzzwords),
		WordCount:       WordCount(text),
	}
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimatePages rounds up and never returns less than one page.
func EstimatePages(words, wordsPerPage int) int {
	if wordsPerPage <= 0 || words <= 0 {
		return 1
	}
	pages := (words + wordsPerPage - 1) / wordsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

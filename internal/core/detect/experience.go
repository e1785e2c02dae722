package detect

import (
	"regexp"
	"strconv"
)

var (
	explicitYearsPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)
	calendarYearPattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ExperienceYears prefers explicit "<N> years" phrasing (largest N). Without it, the span
// between the earliest and latest calendar year (1900-2099) is used when at least two distinct
// years appear. 0 means nothing was detected.
func ExperienceYears(text string) int {
	if n, ok := explicitYears(text); ok {
		return n
	}
	return calendarYearSpan(text)
}

func explicitYears(text string) (int, bool) {
	best, found := 0, false
	for _, m := range explicitYearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = true
		if n > best {
			best = n
		}
	}
	return best, found
}

func calendarYearSpan(text string) int {
	matches := calendarYearPattern.FindAllString(text, -1)
	if len(matches) < 2 {
		return 0
	}
	minYear, maxYear := 0, 0
	for i, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if i == 0 || y < minYear {
			minYear = y
		}
		if i == 0 || y > maxYear {
			maxYear = y
		}
	}
	return maxYear - minYear
}

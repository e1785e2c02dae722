// Package scoring turns detector outputs into the bounded résumé quality score.
//
// Policy, applied in this order and then clamped to [MinScore, MaxScore]:
//
//	+10 per section present
//	-2 per spelling error, counting at most SpellErrorCap errors
//	+5 when the email is professional
//	+10 when the word count is inside the ideal band (inclusive)
//	+3 plus 1 per distinct buzzword, when any matched
//	-5 when the page count exceeds 2
package scoring

import "github.com/kirillkom/resume-quality-checker/internal/core/domain"

const (
	MinScore = 0
	MaxScore = 100

	PointsPerSection       = 10
	PointsPerSpellingError = -2
	PointsProfessionalMail = 5
	PointsIdealLength      = 10
	PointsBuzzwordBase     = 3
	PointsPerBuzzword      = 1
	PointsTooManyPages     = -5
	MaxPagesWithoutPenalty = 2
)

const (
	RuleSections     = "sections"
	RuleSpelling     = "spelling"
	RuleEmail        = "professional_email"
	RuleLength       = "ideal_length"
	RuleBuzzwords    = "buzzwords"
	RulePageCount    = "page_count"
	RuleClampAdjusts = "clamp"
)

type Input struct {
	Sections          domain.SectionFlags
	SpellingErrors    int
	ProfessionalEmail bool
	WordCount         int
	PageCount         int
	BuzzwordCount     int

	IdealWordsMin int
	IdealWordsMax int
	SpellErrorCap int
}

// NewInput takes the configurable thresholds from rules.
func NewInput(rules domain.Rules) Input {
	return Input{
		IdealWordsMin: rules.IdealWordsMin,
		IdealWordsMax: rules.IdealWordsMax,
		SpellErrorCap: rules.SpellErrorCap,
	}
}

func Score(in Input) int {
	total := 0
	for _, c := range rawComponents(in) {
		total += c.Points
	}
	return clamp(total)
}

// Breakdown lists the non-zero contributions. When clamping changed the raw sum, a final
// "clamp" component makes the points add up to the score.
func Breakdown(in Input) []domain.ScoreComponent {
	out := make([]domain.ScoreComponent, 0, 7)
	raw := 0
	for _, c := range rawComponents(in) {
		raw += c.Points
		if c.Points != 0 {
			out = append(out, c)
		}
	}
	if adj := clamp(raw) - raw; adj != 0 {
		out = append(out, domain.ScoreComponent{Rule: RuleClampAdjusts, Points: adj})
	}
	return out
}

func rawComponents(in Input) []domain.ScoreComponent {
	errorsCounted := in.SpellingErrors
	if errorsCounted < 0 {
		errorsCounted = 0
	}
	if limit := in.SpellErrorCap; limit >= 0 && errorsCounted > limit {
		errorsCounted = limit
	}

	components := []domain.ScoreComponent{
		{Rule: RuleSections, Points: in.Sections.Count() * PointsPerSection},
		{Rule: RuleSpelling, Points: errorsCounted * PointsPerSpellingError},
		{Rule: RuleEmail},
		{Rule: RuleLength},
		{Rule: RuleBuzzwords},
		{Rule: RulePageCount},
	}
	if in.ProfessionalEmail {
		components[2].Points = PointsProfessionalMail
	}
	if in.WordCount >= in.IdealWordsMin && in.WordCount <= in.IdealWordsMax {
		components[3].Points = PointsIdealLength
	}
	if in.BuzzwordCount > 0 {
		components[4].Points = PointsBuzzwordBase + in.BuzzwordCount*PointsPerBuzzword
	}
	if in.PageCount > MaxPagesWithoutPenalty {
		components[5].Points = PointsTooManyPages
	}
	return components
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

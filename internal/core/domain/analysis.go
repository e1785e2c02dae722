package domain

type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionSummary    Section = "summary"
)

// Sections lists the canonical section scheme in display order.
var Sections = []Section{SectionExperience, SectionEducation, SectionSkills, SectionSummary}

type SectionFlags map[Section]bool

func (f SectionFlags) Count() int {
	n := 0
	for _, present := range f {
		if present {
			n++
		}
	}
	return n
}

type ContactInfo struct {
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	ProfessionalEmail bool   `json:"professional_email"`
	HasLinkedIn       bool   `json:"has_linkedin"`
}

type SpellingReport struct {
	ErrorCount int      `json:"error_count"`
	Words      []string `json:"words"`
	Available  bool     `json:"available"`
	Backend    string   `json:"backend"`
}

type ScoreComponent struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

const WarningLength = "length"

type AnalysisReport struct {
	Filename           string           `json:"filename"`
	Format             Format           `json:"format"`
	Sections           SectionFlags     `json:"sections"`
	Contact            ContactInfo      `json:"contact"`
	ExperienceYears    int              `json:"experience_years"`
	Buzzwords          []string         `json:"buzzwords"`
	Spelling           SpellingReport   `json:"spelling"`
	WordCount          int              `json:"word_count"`
	PageCount          int              `json:"page_count"`
	Score              int              `json:"score"`
	ScoreBreakdown     []ScoreComponent `json:"score_breakdown"`
	Warnings           []string         `json:"warnings,omitempty"`
	ExtractionStrategy string           `json:"extraction_strategy"`
}

type Outcome string

const (
	OutcomeAnalyzed            Outcome = "analyzed"
	OutcomeUnsupportedFormat   Outcome = "unsupported_format"
	OutcomeExtractionFailed    Outcome = "extraction_failed"
	OutcomeInsufficientContent Outcome = "insufficient_content"
)

// OutcomeOf maps a pipeline error to the outcome reported for the document.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeAnalyzed
	case IsKind(err, ErrUnsupportedFormat):
		return OutcomeUnsupportedFormat
	case IsKind(err, ErrInsufficientContent):
		return OutcomeInsufficientContent
	default:
		return OutcomeExtractionFailed
	}
}

type BatchItem struct {
	Filename string          `json:"filename"`
	Outcome  Outcome         `json:"outcome"`
	Report   *AnalysisReport `json:"report,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type SummaryRow struct {
	File        string   `json:"file"`
	Score       int      `json:"score"`
	Pages       int      `json:"pages"`
	Words       int      `json:"words"`
	YearsExp    int      `json:"years_exp"`
	SpellErrors int      `json:"spell_errors"`
	Buzzwords   []string `json:"buzzwords"`
}

type BatchResult struct {
	ID      string       `json:"id"`
	Items   []BatchItem  `json:"items"`
	Summary []SummaryRow `json:"summary"`
}

func NewSummaryRow(report *AnalysisReport) SummaryRow {
	return SummaryRow{
		File:        report.Filename,
		Score:       report.Score,
		Pages:       report.PageCount,
		Words:       report.WordCount,
		YearsExp:    report.ExperienceYears,
		SpellErrors: report.Spelling.ErrorCount,
		Buzzwords:   report.Buzzwords,
	}
}

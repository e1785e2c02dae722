package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		want   Format
		wantOK bool
	}{
		{in: "pdf", want: FormatPDF, wantOK: true},
		{in: ".DOCX", want: FormatDOCX, wantOK: true},
		{in: "Jane Doe CV.Doc", want: FormatDOC, wantOK: true},
		{in: " resume.txt ", want: FormatTXT, wantOK: true},
		{in: "resume.odt", want: Format("odt"), wantOK: false},
		{in: "README", want: Format("readme"), wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParseFormat(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewDocumentDerivesFormat(t *testing.T) {
	doc := NewDocument("Alice.PDF", []byte("%PDF"))
	if doc.Format != FormatPDF || doc.Filename != "Alice.PDF" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{name: "nil", err: nil, want: OutcomeAnalyzed},
		{name: "unsupported", err: WrapError(ErrUnsupportedFormat, "extract", errors.New("odt")), want: OutcomeUnsupportedFormat},
		{name: "insufficient", err: WrapError(ErrInsufficientContent, "check", errors.New("short")), want: OutcomeInsufficientContent},
		{name: "extraction", err: WrapError(ErrExtraction, "pdf", errors.New("xref")), want: OutcomeExtractionFailed},
		{name: "rewrapped", err: fmt.Errorf("batch: %w", WrapError(ErrUnsupportedFormat, "extract", errors.New("x"))), want: OutcomeUnsupportedFormat},
		{name: "unknown", err: errors.New("panic in parser"), want: OutcomeExtractionFailed},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.err); got != tt.want {
			t.Fatalf("%s: OutcomeOf() = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrTemporary, "languagetool.check", cause)
	if !IsKind(err, ErrTemporary) || !errors.Is(err, cause) {
		t.Fatalf("expected kind and cause in chain, got %v", err)
	}
	if err.Error() != "languagetool.check: temporary failure: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if WrapError(ErrTemporary, "op", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
}

func TestSectionFlagsCount(t *testing.T) {
	flags := SectionFlags{SectionExperience: true, SectionSkills: true, SectionSummary: false}
	if flags.Count() != 2 {
		t.Fatalf("expected 2, got %d", flags.Count())
	}
}

func validRules() Rules {
	return Rules{
		SectionKeywords: map[Section][]string{
			SectionExperience: {"experience"},
			SectionEducation:  {"education"},
			SectionSkills:     {"skill"},
			SectionSummary:    {"summary"},
		},
		IdealWordsMin: 300,
		IdealWordsMax: 1000,
		SpellErrorCap: 5,
		WordsPerPage:  500,
	}
}

func TestRulesNormalize(t *testing.T) {
	rules := validRules()
	rules.SectionKeywords["Skills"] = []string{" Skill ", "SKILLS", ""}
	delete(rules.SectionKeywords, SectionSkills)
	rules.Buzzwords = []string{"Python", " python ", "Team Player"}
	rules.ConsumerEmailDomains = []string{"@Gmail.com", "yahoo.com"}

	got := rules.Normalize()
	if !reflect.DeepEqual(got.SectionKeywords[SectionSkills], []string{"skill", "skills"}) {
		t.Fatalf("unexpected skills keywords %v", got.SectionKeywords[SectionSkills])
	}
	if !reflect.DeepEqual(got.Buzzwords, []string{"python", "team player"}) {
		t.Fatalf("unexpected buzzwords %v", got.Buzzwords)
	}
	if !reflect.DeepEqual(got.ConsumerEmailDomains, []string{"gmail.com", "yahoo.com"}) {
		t.Fatalf("unexpected domains %v", got.ConsumerEmailDomains)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestRulesValidateCollectsProblems(t *testing.T) {
	rules := validRules()
	delete(rules.SectionKeywords, SectionSummary)
	rules.SectionKeywords["hobbies"] = []string{"hobby"}
	rules.IdealWordsMax = 100
	rules.WordsPerPage = 0

	err := rules.Validate()
	if !IsKind(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for _, want := range []string{`"summary"`, `"hobbies"`, "ideal word band", "words_per_page"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %v", want, err)
		}
	}
}

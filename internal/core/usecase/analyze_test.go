package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

type extractorFake struct {
	mu    sync.Mutex
	texts map[string]domain.ExtractedText
	errs  map[string]error
	calls int
}

func (f *extractorFake) Extract(_ context.Context, doc domain.Document) (domain.ExtractedText, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.errs[doc.Filename]; ok {
		return domain.ExtractedText{}, err
	}
	if out, ok := f.texts[doc.Filename]; ok {
		return out, nil
	}
	return domain.ExtractedText{Text: string(doc.Data), PageCount: 1, Strategy: "plaintext"}, nil
}

type spellerFake struct {
	words []string
	err   error
	block bool
}

func (f *spellerFake) Check(ctx context.Context, _ string) (domain.SpellingReport, error) {
	if f.block {
		<-ctx.Done()
		return domain.SpellingReport{}, ctx.Err()
	}
	if f.err != nil {
		return domain.SpellingReport{}, f.err
	}
	return domain.SpellingReport{ErrorCount: len(f.words), Words: f.words}, nil
}

func (f *spellerFake) Name() string { return "fake" }

type observerFake struct {
	mu          sync.Mutex
	outcomes    []domain.Outcome
	scores      []int
	unavailable int
}

func (o *observerFake) ObserveDocument(_ domain.Format, outcome domain.Outcome, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *observerFake) ObserveScore(score int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scores = append(o.scores, score)
}

func (o *observerFake) ObserveExtraction(string) {}

func (o *observerFake) ObserveSpellUnavailable(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unavailable++
}

func testRules() domain.Rules {
	return domain.Rules{
		SectionKeywords: map[domain.Section][]string{
			domain.SectionExperience: {"experience", "employment", "work history"},
			domain.SectionEducation:  {"education", "degree", "bachelor"},
			domain.SectionSkills:     {"skill"},
			domain.SectionSummary:    {"summary", "objective", "profile"},
		},
		Buzzwords:              []string{"python", "sql", "java", "team player", "leadership"},
		ConsumerEmailDomains:   []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"},
		IdealWordsMin:          300,
		IdealWordsMax:          1000,
		SpellErrorCap:          5,
		MinContentChars:        100,
		WordsPerPage:           500,
		LongResumeMaxPages:     2,
		LongResumeWarningWords: 1000,
	}
}

// filler returns n neutral words that trigger no detector.
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

func TestAnalyzeConsumerEmailScenarioScoresZero(t *testing.T) {
	text := "john.doe@gmail.com " + filler(49)
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, &spellerFake{}, testRules(), AnalyzeOptions{})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.txt", []byte(text)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.WordCount != 50 {
		t.Fatalf("expected 50 words, got %d", report.WordCount)
	}
	if report.Sections.Count() != 0 {
		t.Fatalf("expected no sections, got %v", report.Sections)
	}
	if report.Contact.Email != "john.doe@gmail.com" || report.Contact.ProfessionalEmail {
		t.Fatalf("unexpected contact: %+v", report.Contact)
	}
	if report.Score != 0 {
		t.Fatalf("expected score 0, got %d", report.Score)
	}
}

func TestAnalyzeThreeSectionScenarioScoresFifty(t *testing.T) {
	head := "Education Experience Skills jd@acme.com python sql"
	text := head + " " + filler(500-len(strings.Fields(head)))
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, &spellerFake{}, testRules(), AnalyzeOptions{})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.txt", []byte(text)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.WordCount != 500 {
		t.Fatalf("expected 500 words, got %d", report.WordCount)
	}
	if !reflect.DeepEqual(report.Buzzwords, []string{"python", "sql"}) {
		t.Fatalf("unexpected buzzwords: %v", report.Buzzwords)
	}
	if !report.Contact.ProfessionalEmail {
		t.Fatalf("expected professional email")
	}
	if report.Score != 50 {
		t.Fatalf("expected score 50, got %d (breakdown %+v)", report.Score, report.ScoreBreakdown)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	text := "Summary: backend engineer. Experience 2015 - 2023 at Acme. " + filler(80)
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, nil, testRules(), AnalyzeOptions{})
	doc := domain.NewDocument("cv.txt", []byte(text))

	first, err := uc.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := uc.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ:\n%+v\n%+v", first, second)
	}
	if first.Spelling.Available {
		t.Fatalf("expected spelling unavailable without a backend")
	}
}

func TestAnalyzeInsufficientContent(t *testing.T) {
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, &spellerFake{}, testRules(), AnalyzeOptions{})

	_, err := uc.Analyze(context.Background(), domain.NewDocument("short.txt", []byte("   too short   ")))
	if !domain.IsKind(err, domain.ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestAnalyzeUnsupportedFormatSkipsExtractor(t *testing.T) {
	extractor := &extractorFake{}
	uc := NewAnalyzeResumeUseCase(extractor, &spellerFake{}, testRules(), AnalyzeOptions{})

	_, err := uc.Analyze(context.Background(), domain.NewDocument("cv.rtf", []byte(filler(200))))
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor must not run for unsupported formats")
	}
}

func TestAnalyzeWrapsUntypedExtractorErrors(t *testing.T) {
	extractor := &extractorFake{errs: map[string]error{"cv.pdf": errors.New("boom")}}
	uc := NewAnalyzeResumeUseCase(extractor, &spellerFake{}, testRules(), AnalyzeOptions{})

	_, err := uc.Analyze(context.Background(), domain.NewDocument("cv.pdf", []byte("%PDF")))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if domain.OutcomeOf(err) != domain.OutcomeExtractionFailed {
		t.Fatalf("unexpected outcome %s", domain.OutcomeOf(err))
	}
}

func TestAnalyzeSpellingErrorsReduceScore(t *testing.T) {
	text := "Skills: writing. " + filler(100)
	speller := &spellerFake{words: []string{"Teh", "teh", "recieve", " "}}
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, speller, testRules(), AnalyzeOptions{})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.txt", []byte(text)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Spelling.ErrorCount != 2 || !reflect.DeepEqual(report.Spelling.Words, []string{"recieve", "teh"}) {
		t.Fatalf("unexpected spelling report: %+v", report.Spelling)
	}
	if !report.Spelling.Available || report.Spelling.Backend != "fake" {
		t.Fatalf("expected available fake backend, got %+v", report.Spelling)
	}
	if report.Score != 6 {
		t.Fatalf("expected score 6, got %d", report.Score)
	}
}

func TestAnalyzeDegradesWhenSpellBackendFails(t *testing.T) {
	observer := &observerFake{}
	text := "Skills: writing. " + filler(100)
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, &spellerFake{err: errors.New("connection refused")}, testRules(), AnalyzeOptions{
		Observer: observer,
	})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.txt", []byte(text)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Spelling.Available || report.Spelling.ErrorCount != 0 {
		t.Fatalf("expected degraded spelling report, got %+v", report.Spelling)
	}
	if report.Score != 10 {
		t.Fatalf("expected score 10, got %d", report.Score)
	}
	if observer.unavailable != 1 {
		t.Fatalf("expected one unavailable observation, got %d", observer.unavailable)
	}
}

func TestAnalyzeSpellTimeoutDoesNotBlockReport(t *testing.T) {
	text := "Skills: writing. " + filler(100)
	uc := NewAnalyzeResumeUseCase(&extractorFake{}, &spellerFake{block: true}, testRules(), AnalyzeOptions{
		SpellTimeout: 20 * time.Millisecond,
	})

	start := time.Now()
	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.txt", []byte(text)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("spell timeout not honoured")
	}
	if report.Spelling.Available {
		t.Fatalf("expected unavailable spelling after timeout")
	}
}

func TestAnalyzeUsesExtractorPageCountAndWarnsOnLongResume(t *testing.T) {
	text := "Experience " + filler(1199)
	extractor := &extractorFake{texts: map[string]domain.ExtractedText{
		"long.pdf": {Text: text, PageCount: 4, Strategy: "ledongthuc"},
	}}
	uc := NewAnalyzeResumeUseCase(extractor, &spellerFake{}, testRules(), AnalyzeOptions{})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("long.pdf", []byte("%PDF")))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.PageCount != 4 || report.ExtractionStrategy != "ledongthuc" {
		t.Fatalf("unexpected page/strategy: %d %s", report.PageCount, report.ExtractionStrategy)
	}
	if !reflect.DeepEqual(report.Warnings, []string{domain.WarningLength}) {
		t.Fatalf("expected length warning, got %v", report.Warnings)
	}
	if report.Score != 5 {
		t.Fatalf("expected score 5, got %d", report.Score)
	}
}

func TestAnalyzeEstimatesPagesWhenUnknown(t *testing.T) {
	extractor := &extractorFake{texts: map[string]domain.ExtractedText{
		"cv.docx": {Text: filler(1100), Strategy: "docx"},
	}}
	uc := NewAnalyzeResumeUseCase(extractor, &spellerFake{}, testRules(), AnalyzeOptions{})

	report, err := uc.Analyze(context.Background(), domain.NewDocument("cv.docx", []byte("PK")))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.PageCount != 3 {
		t.Fatalf("expected 3 estimated pages, got %d", report.PageCount)
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kirillkom/resume-quality-checker/internal/core/detect"
	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/core/ports"
	"github.com/kirillkom/resume-quality-checker/internal/core/scoring"
)

const (
	defaultSpellTimeout = 20 * time.Second
	defaultBatchWorkers = 4
)

type AnalyzeOptions struct {
	SpellTimeout time.Duration
	BatchWorkers int
	Observer     ports.AnalysisObserver
	Logger       *slog.Logger
}

type AnalyzeResumeUseCase struct {
	extractor ports.TextExtractor
	speller   ports.SpellChecker
	rules     domain.Rules

	spellTimeout time.Duration
	batchWorkers int
	observer     ports.AnalysisObserver
	logger       *slog.Logger
}

func NewAnalyzeResumeUseCase(
	extractor ports.TextExtractor,
	speller ports.SpellChecker,
	rules domain.Rules,
	options AnalyzeOptions,
) *AnalyzeResumeUseCase {
	spellTimeout := options.SpellTimeout
	if spellTimeout <= 0 {
		spellTimeout = defaultSpellTimeout
	}
	workers := options.BatchWorkers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	observer := options.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeResumeUseCase{
		extractor:    extractor,
		speller:      speller,
		rules:        rules,
		spellTimeout: spellTimeout,
		batchWorkers: workers,
		observer:     observer,
		logger:       logger,
	}
}

func (uc *AnalyzeResumeUseCase) Analyze(ctx context.Context, doc domain.Document) (*domain.AnalysisReport, error) {
	start := time.Now()
	report, err := uc.analyze(ctx, doc)
	outcome := domain.OutcomeOf(err)
	uc.observer.ObserveDocument(doc.Format, outcome, time.Since(start))

	if err != nil {
		uc.logger.Warn("document_skipped",
			"filename", doc.Filename,
			"format", string(doc.Format),
			"outcome", string(outcome),
			"error", err,
		)
		return nil, err
	}

	uc.observer.ObserveScore(report.Score)
	uc.logger.Info("document_analyzed",
		"filename", doc.Filename,
		"format", string(doc.Format),
		"score", report.Score,
		"words", report.WordCount,
		"pages", report.PageCount,
		"spell_available", report.Spelling.Available,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return report, nil
}

func (uc *AnalyzeResumeUseCase) analyze(ctx context.Context, doc domain.Document) (*domain.AnalysisReport, error) {
	extracted, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureContent(extracted.Text); err != nil {
		return nil, err
	}

	spelling := uc.startSpellCheck(ctx, extracted.Text)
	signals := detect.Run(extracted.Text, uc.rules)

	pages := extracted.PageCount
	if pages <= 0 {
		pages = detect.EstimatePages(signals.WordCount, uc.rules.WordsPerPage)
	}

	report := &domain.AnalysisReport{
		Filename:           doc.Filename,
		Format:             doc.Format,
		Sections:           signals.Sections,
		Contact:            signals.Contact,
		ExperienceYears:    signals.ExperienceYears,
		Buzzwords:          signals.Buzzwords,
		Spelling:           <-spelling,
		WordCount:          signals.WordCount,
		PageCount:          pages,
		ExtractionStrategy: extracted.Strategy,
	}
	uc.score(report)
	report.Warnings = uc.warnings(report)
	return report, nil
}

func (uc *AnalyzeResumeUseCase) extractText(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	if _, ok := domain.ParseFormat(string(doc.Format)); !ok {
		return domain.ExtractedText{}, domain.WrapError(
			domain.ErrUnsupportedFormat,
			"extract text",
			fmt.Errorf("format %q of %s", doc.Format, doc.Filename),
		)
	}
	extracted, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		if domain.IsKind(err, domain.ErrUnsupportedFormat) || domain.IsKind(err, domain.ErrExtraction) {
			return domain.ExtractedText{}, fmt.Errorf("extract text: %w", err)
		}
		return domain.ExtractedText{}, domain.WrapError(domain.ErrExtraction, "extract text", err)
	}
	uc.observer.ObserveExtraction(extracted.Strategy)
	return extracted, nil
}

func (uc *AnalyzeResumeUseCase) ensureContent(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < uc.rules.MinContentChars {
		return domain.WrapError(
			domain.ErrInsufficientContent,
			"check content",
			fmt.Errorf("extracted %d characters, need at least %d", n, uc.rules.MinContentChars),
		)
	}
	return nil
}

func (uc *AnalyzeResumeUseCase) score(report *domain.AnalysisReport) {
	in := scoring.NewInput(uc.rules)
	in.Sections = report.Sections
	in.SpellingErrors = report.Spelling.ErrorCount
	in.ProfessionalEmail = report.Contact.ProfessionalEmail
	in.WordCount = report.WordCount
	in.PageCount = report.PageCount
	in.BuzzwordCount = len(report.Buzzwords)

	report.Score = scoring.Score(in)
	report.ScoreBreakdown = scoring.Breakdown(in)
}

func (uc *AnalyzeResumeUseCase) warnings(report *domain.AnalysisReport) []string {
	var out []string
	if uc.rules.LongResumeMaxPages > 0 && report.PageCount > uc.rules.LongResumeMaxPages && report.WordCount > uc.rules.LongResumeWarningWords {
		out = append(out, domain.WarningLength)
	}
	return out
}

type noopObserver struct{}

func (noopObserver) ObserveDocument(domain.Format, domain.Outcome, time.Duration) {}
func (noopObserver) ObserveScore(int)                                             {}
func (noopObserver) ObserveExtraction(string)                                     {}
func (noopObserver) ObserveSpellUnavailable(string)                               {}

package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const (
	StrategyLedongthuc = "ledongthuc"
	StrategyPDFCPU     = "pdfcpu"
)

// Stager materializes upload bytes as a file for parsers that work on paths.
type Stager interface {
	Stage(ctx context.Context, filename string, data []byte) (string, func(), error)
}

// strategy reads the staged file at path and returns its text and the number of pages scanned.
type strategy struct {
	name string
	run  func(ctx context.Context, path string) (string, int, error)
}

type Extractor struct {
	stager     Stager
	logger     *slog.Logger
	strategies []strategy
}

func NewExtractor(stager Stager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		stager: stager,
		logger: logger,
		strategies: []strategy{
			{name: StrategyLedongthuc, run: readWithLedongthuc},
			{name: StrategyPDFCPU, run: readWithPDFCPU},
		},
	}
}

var errEmptyText = errors.New("no text recovered")

// Extract tries each strategy in order. A strategy that errors, panics or recovers only
// whitespace counts as failed; when all fail the document is an extraction failure.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	path, cleanup, err := e.stager.Stage(ctx, doc.Filename, doc.Data)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrExtraction, "stage pdf", err)
	}

	var failures []error
	for _, s := range e.strategies {
		if err := ctx.Err(); err != nil {
			return domain.ExtractedText{}, err
		}

		text, pages, err := runGuarded(ctx, s, path)
		if err == nil && strings.TrimSpace(text) == "" {
			err = errEmptyText
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
			e.logger.Info("extraction_fallback",
				"filename", doc.Filename,
				"strategy", s.name,
				"error", err,
			)
			continue
		}
		return domain.ExtractedText{Text: text, PageCount: pages, Strategy: s.name}, nil
	}

	return domain.ExtractedText{}, domain.WrapError(
		domain.ErrExtraction,
		"extract pdf",
		fmt.Errorf("%s: %w", doc.Filename, errors.Join(failures...)),
	)
}

// runGuarded converts a parser panic on malformed input into an error.
func runGuarded(ctx context.Context, s strategy, path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("parser panic: %v", r)
		}
	}()
	return s.run(ctx, path)
}

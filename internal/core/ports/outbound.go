package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// TextExtractor converts an uploaded document into normalized plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error)
}

// SpellChecker flags misspelled tokens. Implementations may fail; callers degrade.
type SpellChecker interface {
	Check(ctx context.Context, text string) (domain.SpellingReport, error)
	Name() string
}

// AnalysisObserver receives per-document pipeline events (metrics).
type AnalysisObserver interface {
	ObserveDocument(format domain.Format, outcome domain.Outcome, duration time.Duration)
	ObserveScore(score int)
	ObserveExtraction(strategy string)
	ObserveSpellUnavailable(backend string)
}

// SummaryExporter writes the batch summary table.
type SummaryExporter interface {
	Export(w io.Writer, rows []domain.SummaryRow) error
	ContentType() string
	FileExtension() string
}

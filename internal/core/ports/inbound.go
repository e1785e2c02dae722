package ports

import (
	"context"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// ResumeAnalyzer is the inbound contract for scoring one or many résumés.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, doc domain.Document) (*domain.AnalysisReport, error)
	AnalyzeBatch(ctx context.Context, docs []domain.Document) *domain.BatchResult
}

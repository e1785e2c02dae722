package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// AnalyzeBatch analyzes every document independently. A failing document is recorded with its
// outcome and never stops the rest; items keep the input order.
func (uc *AnalyzeResumeUseCase) AnalyzeBatch(ctx context.Context, docs []domain.Document) *domain.BatchResult {
	result := &domain.BatchResult{
		ID:      uuid.NewString(),
		Items:   make([]domain.BatchItem, len(docs)),
		Summary: []domain.SummaryRow{},
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.batchWorkers)
	for i, doc := range docs {
		i, doc := i, doc
		eg.Go(func() error {
			result.Items[i] = uc.analyzeItem(gctx, doc)
			return nil
		})
	}
	_ = eg.Wait()

	for _, item := range result.Items {
		if item.Report != nil {
			result.Summary = append(result.Summary, domain.NewSummaryRow(item.Report))
		}
	}

	uc.logger.Info("batch_analyzed",
		"batch_id", result.ID,
		"documents", len(docs),
		"analyzed", len(result.Summary),
	)
	return result
}

func (uc *AnalyzeResumeUseCase) analyzeItem(ctx context.Context, doc domain.Document) domain.BatchItem {
	item := domain.BatchItem{Filename: doc.Filename}
	report, err := uc.Analyze(ctx, doc)
	item.Outcome = domain.OutcomeOf(err)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Report = report
	return item
}

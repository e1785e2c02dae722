package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

var errNoSpellChecker = errors.New("no spell checker configured")

// startSpellCheck runs the backend concurrently with the detectors. The returned channel always
// yields exactly one report: a backend that errors, or outlives the timeout, yields an
// unavailable report with zero errors instead of failing the document.
func (uc *AnalyzeResumeUseCase) startSpellCheck(ctx context.Context, text string) <-chan domain.SpellingReport {
	out := make(chan domain.SpellingReport, 1)
	go func() {
		out <- uc.checkSpelling(ctx, text)
	}()
	return out
}

func (uc *AnalyzeResumeUseCase) checkSpelling(ctx context.Context, text string) domain.SpellingReport {
	if uc.speller == nil {
		return uc.spellUnavailable("none", errNoSpellChecker)
	}
	backend := uc.speller.Name()

	spellCtx, cancel := context.WithTimeout(ctx, uc.spellTimeout)
	defer cancel()

	type result struct {
		report domain.SpellingReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := uc.speller.Check(spellCtx, text)
		done <- result{report: report, err: err}
	}()

	select {
	case <-spellCtx.Done():
		return uc.spellUnavailable(backend, spellCtx.Err())
	case res := <-done:
		if res.err != nil {
			return uc.spellUnavailable(backend, res.err)
		}
		return normalizeSpelling(backend, res.report)
	}
}

func (uc *AnalyzeResumeUseCase) spellUnavailable(backend string, cause error) domain.SpellingReport {
	uc.observer.ObserveSpellUnavailable(backend)
	uc.logger.Warn("spell_backend_unavailable", "backend", backend, "error", cause)
	return domain.SpellingReport{
		ErrorCount: 0,
		Words:      []string{},
		Available:  false,
		Backend:    backend,
	}
}

func normalizeSpelling(backend string, report domain.SpellingReport) domain.SpellingReport {
	seen := make(map[string]struct{}, len(report.Words))
	words := make([]string, 0, len(report.Words))
	for _, w := range report.Words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	sort.Strings(words)
	return domain.SpellingReport{
		ErrorCount: len(words),
		Words:      words,
		Available:  true,
		Backend:    backend,
	}
}

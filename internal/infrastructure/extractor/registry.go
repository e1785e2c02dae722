// Package extractor turns uploaded résumé bytes into normalized plain text. Format-specific
// strategies live in subpackages; Registry dispatches to them and normalizes their output.
package extractor

import (
	"context"
	"fmt"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/core/ports"
)

type Registry struct {
	byFormat map[domain.Format]ports.TextExtractor
}

func NewRegistry() *Registry {
	return &Registry{byFormat: make(map[domain.Format]ports.TextExtractor)}
}

// Register binds extractor to every listed format, replacing any previous binding.
func (r *Registry) Register(extractor ports.TextExtractor, formats ...domain.Format) *Registry {
	for _, f := range formats {
		r.byFormat[f] = extractor
	}
	return r
}

func (r *Registry) Supports(format domain.Format) bool {
	_, ok := r.byFormat[format]
	return ok
}

func (r *Registry) Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	extractor, ok := r.byFormat[doc.Format]
	if !ok {
		return domain.ExtractedText{}, domain.WrapError(
			domain.ErrUnsupportedFormat,
			"extract",
			fmt.Errorf("no extractor for %q (%s)", doc.Format, doc.Filename),
		)
	}
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}

	out, err := extractor.Extract(ctx, doc)
	if err != nil {
		return domain.ExtractedText{}, err
	}
	out.Text = Normalize(out.Text)
	return out, nil
}

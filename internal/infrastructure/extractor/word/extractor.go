// Package word extracts text from Word documents: OOXML .docx archives and legacy binary
// .doc compound files.
package word

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const (
	StrategyDOCX = "docx"
	StrategyOLE  = "ole"
)

var zipMagic = []byte("PK\x03\x04")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract leaves PageCount at zero: Word files carry no reliable page count, so the caller
// estimates it from the word count.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}

	var (
		text     string
		strategy string
		err      error
	)
	switch {
	case doc.Format == domain.FormatDOCX || bytes.HasPrefix(doc.Data, zipMagic):
		// Files saved as .doc by newer editors are often OOXML archives.
		strategy = StrategyDOCX
		text, err = readDOCX(doc.Data)
	case doc.Format == domain.FormatDOC:
		strategy = StrategyOLE
		text, err = readOLE(doc.Data)
	default:
		return domain.ExtractedText{}, domain.WrapError(
			domain.ErrUnsupportedFormat,
			"extract word",
			fmt.Errorf("format %q", doc.Format),
		)
	}
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrExtraction, "extract "+strategy, fmt.Errorf("%s: %w", doc.Filename, err))
	}
	return domain.ExtractedText{Text: text, Strategy: strategy}, nil
}

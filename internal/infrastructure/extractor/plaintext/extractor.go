package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const Strategy = "plaintext"

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes the upload as UTF-8, honouring a UTF-8 or UTF-16 byte order mark. Invalid
// sequences are dropped rather than rejected. A text file counts as one page.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}

	raw := doc.Data
	if hasUTF16BOM(raw) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return domain.ExtractedText{}, domain.WrapError(domain.ErrExtraction, "decode text", fmt.Errorf("%s: %w", doc.Filename, err))
		}
		raw = decoded
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	return domain.ExtractedText{
		Text:      strings.ToValidUTF8(string(raw), ""),
		PageCount: 1,
		Strategy:  Strategy,
	}, nil
}

func hasUTF16BOM(b []byte) bool {
	return len(b) >= 2 && ((b[0] == 0xff && b[1] == 0xfe) || (b[0] == 0xfe && b[1] == 0xff))
}

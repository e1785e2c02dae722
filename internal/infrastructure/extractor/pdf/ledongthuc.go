package pdf

import (
	"context"
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

func readWithLedongthuc(ctx context.Context, path string) (string, int, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	var sb strings.Builder
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*lpdf.Font)
		for _, name := range page.Fonts() {
			font := page.Font(name)
			fonts[name] = &font
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String(), total, nil
}

// Package export writes the batch summary table.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/core/ports"
)

var Header = []string{"File", "Score", "Pages", "Words", "YearsExp", "SpellErrors", "Buzzwords"}

const buzzwordSeparator = ", "

// ForFormat returns the exporter for "csv" or "xlsx".
func ForFormat(format string) (ports.SummaryExporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return CSV{}, nil
	case "xlsx":
		return XLSX{}, nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "export", fmt.Errorf("unknown export format %q", format))
	}
}

func record(row domain.SummaryRow) []string {
	return []string{
		row.File,
		strconv.Itoa(row.Score),
		strconv.Itoa(row.Pages),
		strconv.Itoa(row.Words),
		strconv.Itoa(row.YearsExp),
		strconv.Itoa(row.SpellErrors),
		strings.Join(row.Buzzwords, buzzwordSeparator),
	}
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

type CSV struct{}

func (CSV) ContentType() string   { return "text/csv; charset=utf-8" }
func (CSV) FileExtension() string { return ".csv" }

func (CSV) Export(w io.Writer, rows []domain.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.File, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

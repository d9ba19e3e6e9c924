package xlsxport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sheetkit/gridengine/pkg/grid"
)

// utf8BOM prefixes the CSV output so spreadsheet applications detect the
// encoding instead of guessing a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV is the values-only fallback for when the workbook writer is
// unavailable: comma-separated rows with standard double-quote escaping of
// separators, quotes and newlines. Styles, merges and sizing are dropped.
func WriteCSV(snap grid.Snapshot, out io.Writer) error {
	if _, err := out.Write(utf8BOM); err != nil {
		return fmt.Errorf("xlsxport: write BOM: %w", err)
	}
	w := csv.NewWriter(out)
	for r := 0; r < snap.Rows; r++ {
		if err := w.Write(snap.Data[r]); err != nil {
			return fmt.Errorf("xlsxport: write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("xlsxport: flush csv: %w", err)
	}
	return nil
}

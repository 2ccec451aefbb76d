package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"roomlog/internal/engine"
)

// WriteCSV writes rows as CSV: the 10-column header followed by one record
// per row, every record exactly 10 fields.
func WriteCSV(w io.Writer, rows []engine.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(engine.FlatHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Flat()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSVFilename names a CSV export: the base name for a full export, or a
// date-scoped name ("room_logs_2025-11-20.csv",
// "room_logs_2025-11-17_to_2025-11-21.csv") for filtered ones.
func CSVFilename(base, scope string) string {
	if scope == "" {
		return base + ".csv"
	}
	return fmt.Sprintf("%s_%s.csv", base, scope)
}

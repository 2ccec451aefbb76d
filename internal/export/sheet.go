package export

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"roomlog/internal/engine"
	"roomlog/internal/ledger"
)

// SheetHeading renders the sheet title line for one date, e.g.
// `FH 306 Staff and Student Sign-In (Nov '25)`.
func SheetHeading(title, date string) string {
	return fmt.Sprintf("%s Staff and Student Sign-In (%s)", title, ledger.MonthYear(date))
}

// WriteSheet renders the fixed-layout sign-in sheet for a single date:
// the heading line, then the 10-column table with one line per row. rows
// should already be filtered to the date (engine.RowsForDate).
func WriteSheet(w io.Writer, title, date string, rows []engine.Row) error {
	if _, err := fmt.Fprintln(w, SheetHeading(title, date)); err != nil {
		return fmt.Errorf("write sheet heading: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = true
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	configs := make([]table.ColumnConfig, 0, 10)
	for i := 1; i <= 10; i++ {
		align := text.AlignCenter
		if i == 1 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{Number: i, Align: align, AlignHeader: text.AlignCenter})
	}
	tw.SetColumnConfigs(configs)

	header := make(table.Row, len(engine.FlatHeader))
	for i, h := range engine.FlatHeader {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		flat := row.Flat()
		tr := make(table.Row, len(flat))
		for i, field := range flat {
			tr[i] = field
		}
		tw.AppendRow(tr)
	}

	tw.Render()
	return nil
}

// SheetFilename names a sheet export for one date.
func SheetFilename(title, date string) string {
	return fmt.Sprintf("%s Sign-In Sheet - %s.txt", title, date)
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"roomlog/internal/engine"
	"roomlog/internal/export"
	"roomlog/internal/ledger"
)

// ExportCSV writes the filtered rows as a CSV file under dir and returns
// its path. base is the filename base ("room_logs"); date and weekDate are
// the optional filters.
func (s *Service) ExportCSV(ctx context.Context, dir, base, date, weekDate string) (string, error) {
	rows, scope, err := s.FilteredRows(ctx, date, weekDate)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create exports dir: %w", err)
	}

	path := filepath.Join(dir, export.CSVFilename(base, scope))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv export: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, rows); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv export: %w", err)
	}
	return path, nil
}

// ExportSheets writes one sign-in sheet per covered date under dir and
// returns the generated paths. With a date filter exactly one sheet is
// written; with a week filter, one per weekday that has rows; otherwise
// one per distinct date in the log.
//
// room is the heading label ("FH 306"); prefix names the files
// ("FH306 Sign-In Sheet - <date>.txt").
func (s *Service) ExportSheets(ctx context.Context, dir, room, prefix, date, weekDate string) ([]string, error) {
	rows, _, err := s.FilteredRows(ctx, date, weekDate)
	if err != nil {
		return nil, err
	}

	var dates []string
	switch {
	case date != "":
		dates = []string{date}
	case weekDate != "":
		monday, friday, err := ledger.WeekRange(weekDate)
		if err != nil {
			return nil, fmt.Errorf("invalid week date %q: %w", weekDate, err)
		}
		dates = ledger.DatesBetween(monday, friday)
	default:
		dates = engine.DatesOf(rows)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports dir: %w", err)
	}

	var paths []string
	for _, d := range dates {
		dated := engine.RowsForDate(rows, d)
		if len(dated) == 0 {
			continue
		}
		path := filepath.Join(dir, export.SheetFilename(prefix, d))
		if err := writeSheetFile(path, room, d, dated); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSheetFile(path, room, date string, rows []engine.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sheet export: %w", err)
	}
	defer f.Close()

	if err := export.WriteSheet(f, room, date, rows); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close sheet export: %w", err)
	}
	return nil
}

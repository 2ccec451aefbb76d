package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomlog/internal/ledger"
)

func TestExportCSV_FullLog(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	dir := t.TempDir()

	mustSign(t, svc, "Alice", ledger.In)
	clock.Advance(8 * time.Hour)
	mustSign(t, svc, "Alice", ledger.Out)

	path, err := svc.ExportCSV(ctx, dir, "room_logs", "", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "room_logs.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Alice,Nov. 20,9:00 AM,5:00 PM,,,,,,", lines[1])
}

func TestExportCSV_DateScopedFilename(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	mustSign(t, svc, "Alice", ledger.In)

	path, err := svc.ExportCSV(context.Background(), dir, "room_logs", "2025-11-20", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "room_logs_2025-11-20.csv"), path)
}

func TestExportSheets_OnePerDate(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	dir := t.TempDir()

	mustSign(t, svc, "Alice", ledger.In)
	clock.Set(time.Date(2025, 11, 21, 9, 0, 0, 0, time.Local))
	mustSign(t, svc, "Alice", ledger.In)

	paths, err := svc.ExportSheets(ctx, dir, "FH 306", "FH306", "", "")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "FH306 Sign-In Sheet - 2025-11-20.txt"), paths[0])
	assert.Equal(t, filepath.Join(dir, "FH306 Sign-In Sheet - 2025-11-21.txt"), paths[1])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "FH 306 Staff and Student Sign-In (Nov '25)")
	assert.Contains(t, string(data), "Alice")
}

func TestExportSheets_WeekSkipsEmptyDays(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	// Only Thursday has events; the other four weekdays yield no sheet.
	mustSign(t, svc, "Alice", ledger.In)

	paths, err := svc.ExportSheets(context.Background(), dir, "FH 306", "FH306", "", "2025-11-20")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "2025-11-20")
}

func TestExportSheets_DateWithNoRows(t *testing.T) {
	svc, _ := newTestService(t)

	paths, err := svc.ExportSheets(context.Background(), t.TempDir(), "FH 306", "FH306", "2025-01-01", "")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

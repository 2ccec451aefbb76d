package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSheetCommand creates the sheet command.
func NewSheetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Export formatted sign-in sheets",
		Long: `Write one formatted sign-in sheet per covered date under the exports
directory. Dates with no entries are skipped.

Without filters a sheet is written for every date in the log. --date narrows
to a single day; --week narrows to the Monday-Friday working week containing
the given date.

Example:
  roomlog sheet --date 2025-11-20
  roomlog sheet --week 2025-11-19`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheet(opts, cmd)
		},
	}

	addExportFlags(cmd, opts)

	return cmd
}

func runSheet(opts *ExportOptions, cmd *cobra.Command) error {
	svc, cfg, cleanup, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	dir := cfg.ExportsDir
	if opts.Dir != "" {
		dir = opts.Dir
	}

	paths, err := svc.ExportSheets(cmd.Context(), dir, cfg.Room, cfg.SheetPrefix(), opts.Date, opts.Week)
	if err != nil {
		return WrapExitError(ExitCommandError, "sheet export failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if len(paths) == 0 {
		msg := "no logs found for the selected range"
		if ferr := formatter.Failure(msg); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, msg)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"paths": paths})
	}
	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags shared by the export and sheet commands.
type ExportOptions struct {
	*RootOptions
	Date string
	Week string
	Dir  string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the log as CSV",
		Long: `Write the sign-in log as a CSV file under the exports directory.

Without filters the full log is exported. --date narrows to a single day;
--week narrows to the Monday-Friday working week containing the given date.

Example:
  roomlog export
  roomlog export --date 2025-11-20
  roomlog export --week 2025-11-19 --dir /tmp`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	addExportFlags(cmd, opts)

	return cmd
}

func addExportFlags(cmd *cobra.Command, opts *ExportOptions) {
	cmd.Flags().StringVar(&opts.Date, "date", "", "filter to a single date (2006-01-02)")
	cmd.Flags().StringVar(&opts.Week, "week", "", "filter to the Mon-Fri week containing this date")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("date", "week")
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	svc, cfg, cleanup, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	dir := cfg.ExportsDir
	if opts.Dir != "" {
		dir = opts.Dir
	}

	path, err := svc.ExportCSV(cmd.Context(), dir, cfg.CSVBase, opts.Date, opts.Week)
	if err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(map[string]string{"path": path})
	}
	return formatter.Success(fmt.Sprintf("wrote %s", path))
}

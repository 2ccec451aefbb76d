package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewScrubCommand creates the scrub command.
func NewScrubCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scrub",
		Short: "Strip seconds from stored timestamps",
		Long: `Rewrite any stored timestamp that carries a seconds component down to
minute precision. Entries recorded by older builds may still carry seconds;
serve runs this automatically at startup.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.Store.ScrubSeconds(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "scrub failed", err)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return formatter.Success(map[string]int{"scrubbed": n})
			}
			return formatter.Success(fmt.Sprintf("scrubbed %d timestamps", n))
		},
	}
}

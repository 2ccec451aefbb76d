package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"roomlog/internal/engine"
	"roomlog/internal/ledger"
	"roomlog/internal/store"
)

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <card-id>",
		Short: "Record a card scan",
		Long: `Resolve a card to its registered name and record whichever action flips
the person's current state: signed out scans in, signed in scans out.

Example:
  roomlog scan 0009876543`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScan(opts *RootOptions, cardID string, cmd *cobra.Command) error {
	svc, _, cleanup, err := openService(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	event, err := svc.Scan(cmd.Context(), cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotRegistered) {
			msg := fmt.Sprintf("card %s is not registered", cardID)
			if ferr := formatter.Failure(msg); ferr != nil {
				return ferr
			}
			return NewExitError(ExitFailure, msg)
		}
		if engine.IsRejection(err) {
			if ferr := formatter.Failure(err.Error()); ferr != nil {
				return ferr
			}
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to record scan", err)
	}

	if opts.Format == "json" {
		return formatter.Success(event)
	}
	return formatter.Success(fmt.Sprintf("%s signed %s at %s", event.Name, event.Action, ledger.ClockOf(event.Timestamp)))
}

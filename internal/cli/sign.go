package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roomlog/internal/engine"
	"roomlog/internal/ledger"
)

// SignOptions holds flags for the sign command.
type SignOptions struct {
	*RootOptions
	Time string
}

// NewSignCommand creates the sign command.
func NewSignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sign <name> <in|out>",
		Short: "Record a sign-in or sign-out",
		Long: `Record a sign-in or sign-out for a person on today's date.

By default the event is stamped at the current time. Use --time to backdate
the entry to a specific time today; the sign rules are checked against the
state at that time.

Example:
  roomlog sign "Alice" in
  roomlog sign "Bob" out --time 16:30`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Time, "time", "", "manual time today, 24-hour HH:MM")

	return cmd
}

func runSign(opts *SignOptions, name, rawAction string, cmd *cobra.Command) error {
	action, err := ledger.ParseAction(strings.ToUpper(rawAction))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid action", err)
	}

	svc, _, cleanup, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	event, err := svc.SignManual(cmd.Context(), name, action, opts.Time)
	if err != nil {
		if engine.IsRejection(err) {
			if ferr := formatter.Failure(err.Error()); ferr != nil {
				return ferr
			}
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to record event", err)
	}

	if opts.Format == "json" {
		return formatter.Success(event)
	}
	return formatter.Success(fmt.Sprintf("%s signed %s at %s", event.Name, event.Action, ledger.ClockOf(event.Timestamp)))
}

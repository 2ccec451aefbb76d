package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"roomlog/internal/engine"
	"roomlog/internal/ledger"
)

// StateOptions holds flags for the state command.
type StateOptions struct {
	*RootOptions
	At string
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "state <name>",
		Short: "Show a person's current state",
		Long: `Show whether a person is signed IN or OUT.

By default the state is resolved at the current instant. Use --at to resolve
it at a past timestamp instead.

Example:
  roomlog state "Alice"
  roomlog state "Alice" --at "2025-11-20 1:30 PM"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", `resolve state at this timestamp ("2006-01-02 3:04 PM")`)

	return cmd
}

// stateResult is the JSON payload for the state command.
type stateResult struct {
	Name  string `json:"name"`
	At    string `json:"at"`
	State string `json:"state"`
}

func runState(opts *StateOptions, name string, cmd *cobra.Command) error {
	svc, _, cleanup, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	name = ledger.NormalizeName(name)
	at := opts.At
	if at == "" {
		at = ledger.Timestamp(svc.Clock.Now())
	}

	history, err := svc.Store.EventsForPersonDay(cmd.Context(), name, ledger.DateOf(at))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}
	state := engine.StateAt(history, at)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(stateResult{Name: name, At: at, State: string(state)})
	}
	return formatter.Success(fmt.Sprintf("%s is %s as of %s", name, state, at))
}

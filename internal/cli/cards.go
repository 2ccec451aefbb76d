package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCardsCommand creates the cards command group.
func NewCardsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage the card registry",
		Long: `Manage the card registry used by the scan command and the scan UI.

Example:
  roomlog cards list
  roomlog cards link 0009876543 "Alice"
  roomlog cards unlink 0009876543`,
	}

	cmd.AddCommand(newCardsListCommand(rootOpts))
	cmd.AddCommand(newCardsLinkCommand(rootOpts))
	cmd.AddCommand(newCardsUnlinkCommand(rootOpts))

	return cmd
}

func newCardsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List registered cards",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			cards, err := svc.Store.Cards(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list cards", err)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return formatter.Success(cards)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Card", "Name"})
			for _, c := range cards {
				t.AppendRow(table.Row{c.ID, c.Name})
			}
			t.Render()
			return nil
		},
	}
}

func newCardsLinkCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "link <card-id> <name>",
		Short:         "Link a card to a name",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Store.LinkCard(cmd.Context(), args[0], args[1]); err != nil {
				return WrapExitError(ExitCommandError, "failed to link card", err)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("linked %s to %s", args[0], args[1]))
		},
	}
}

func newCardsUnlinkCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "unlink <card-id>",
		Short:         "Remove a card link",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := svc.Store.UnlinkCard(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to unlink card", err)
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if !removed {
				msg := fmt.Sprintf("card %s is not registered", args[0])
				if ferr := formatter.Failure(msg); ferr != nil {
					return ferr
				}
				return NewExitError(ExitFailure, msg)
			}
			return formatter.Success(fmt.Sprintf("unlinked %s", args[0]))
		},
	}
}

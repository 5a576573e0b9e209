package commands

import "github.com/spf13/cobra"

// NewRootCmd builds the reportsd command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reportsd",
		Short:         "Cash-flow and bank reconciliation reports over an accounting ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newSetupCmd())
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the flowctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowctl",
		Short: "Run wiki assistant flows from the terminal",
		Long: `flowctl runs the summarize, ask, compose and edit flows against the
configured database and model, using the same configuration as the server.

Issue a token first, then pass it to any flow:
  flowctl token --uid alice
  flowctl ask --token <token> --question "What did we decide?"`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewTokenCmd())
	for _, fc := range flowCommands {
		cmd.AddCommand(NewFlowCmd(fc))
	}
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

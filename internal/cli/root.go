// Package cli wires configuration, data loading, strategies and
// journaling into the quantsim command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quantsim",
		Short:         "quantsim runs daily-bar trading backtests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newBacktestCmd(),
		newShowCmd(),
		newInitCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("quantsim (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

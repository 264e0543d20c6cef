package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quantsim/journal"
)

func newShowCmd() *cobra.Command {
	var (
		dbPath string
		trades bool
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored backtest run from the SQLite journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			runID := args[0]
			run, err := j.GetRun(runID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Run:          %s\n", run.RunID)
			fmt.Fprintf(w, "Created:      %s\n", run.Created.Format(time.RFC3339))
			fmt.Fprintf(w, "Strategy:     %s\n", run.Strategy)
			fmt.Fprintf(w, "Period:       %s to %s\n",
				run.Start.Format(time.DateOnly), run.End.Format(time.DateOnly))
			fmt.Fprintf(w, "Capital:      %.2f -> %.2f\n", run.InitialCapital, run.FinalValue)
			fmt.Fprintf(w, "Return:       %.2f%% (annualized %.2f%%)\n",
				run.TotalReturn*100, run.AnnualizedReturn*100)
			fmt.Fprintf(w, "Max Drawdown: %.2f%%\n", run.MaxDrawdown*100)
			fmt.Fprintf(w, "Sharpe:       %.2f  Sortino: %.2f  Calmar: %.2f\n",
				run.SharpeRatio, run.SortinoRatio, run.CalmarRatio)
			fmt.Fprintf(w, "Win Rate:     %.2f%%  P/L Ratio: %.2f  Round Trips: %d\n",
				run.WinRate*100, run.ProfitLossRatio, run.Trades)

			if !trades {
				return nil
			}

			list, err := j.ListTradesByRun(runID)
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			for _, t := range list {
				fmt.Fprintf(w, "%s  %-4s %-8s %6d @ %8.2f  pl %10.2f  %s\n",
					t.Date.Format(time.DateOnly), t.Side, t.Code, t.Quantity, t.Price, t.RealizedPL, t.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbPath, "db", "d", "./backtest.db", "path to SQLite journal DB")
	cmd.Flags().BoolVar(&trades, "trades", false, "also list the run's trades")

	return cmd
}

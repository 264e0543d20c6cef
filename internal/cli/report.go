package cli

import (
	"fmt"
	"io"
	"time"

	"quantsim/backtest"
)

// PrintReport writes the run summary in the standard text layout.
func PrintReport(w io.Writer, runID, strategy string, cfg backtest.Config, r backtest.Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", runID)
	fmt.Fprintf(w, "Strategy:      %s\n", strategy)
	fmt.Fprintf(w, "Period:        %s to %s (%d trading days)\n",
		cfg.Start.Format(time.DateOnly), cfg.End.Format(time.DateOnly), r.Report.TradingDays)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial NAV:   %.2f\n", r.Report.InitialNAV)
	fmt.Fprintf(w, "Final NAV:     %.2f\n", r.Report.FinalNAV)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", r.Report.TotalReturn*100)
	fmt.Fprintf(w, "Annualized:    %.2f%%\n", r.Report.AnnualizedReturn*100)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.Report.MaxDrawdown*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.Report.SharpeRatio)
	fmt.Fprintf(w, "Sortino:       %.2f\n", r.Report.SortinoRatio)
	fmt.Fprintf(w, "Calmar:        %.2f\n", r.Report.CalmarRatio)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Round Trips:   %d\n", r.Report.TotalSells)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Report.WinRate*100)
	fmt.Fprintf(w, "P/L Ratio:     %.2f\n", r.Report.ProfitLossRatio)
	fmt.Fprintf(w, "Avg Holding:   %.1f days\n", r.Report.AvgHoldingDays)

	if len(r.Positions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Open Positions")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, p := range r.Positions {
			fmt.Fprintf(w, "%-8s %6d @ %.2f  now %.2f  (%+.2f%%)\n",
				p.Code, p.Quantity, p.AvgCost, p.CurrentPrice, p.UnrealizedPct()*100)
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Skipped events: %d (first: %s %s, %s)\n",
			len(r.Skipped),
			r.Skipped[0].Date.Format(time.DateOnly), r.Skipped[0].Code, r.Skipped[0].Reason)
	}

	fmt.Fprintln(w)
}

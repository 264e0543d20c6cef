package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quantsim/backtest"
	"quantsim/config"
	"quantsim/journal"
	"quantsim/market"
	"quantsim/pkg/id"
	"quantsim/strategies"
)

func newBacktestCmd() *cobra.Command {
	var (
		configPath string
		strategy   string
		dataDir    string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run a backtest over daily bar files",
		Long: `Backtest replays daily bars through the selected strategy and
prints a performance report. Trades and the NAV series are persisted
through the configured journal backend.

Example:
  quantsim backtest --config run.yaml --strategy momentum`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			if strategy != "" {
				cfg.Strategy.Name = strategy
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			if start != "" {
				cfg.Backtest.Start = start
			}
			if end != "" {
				cfg.Backtest.End = end
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runBacktest(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "quantsim.yaml", "path to YAML or JSON config file")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "override strategy name")
	cmd.Flags().StringVarP(&dataDir, "data", "d", "", "override bar-file directory")
	cmd.Flags().StringVar(&start, "start", "", "override start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "override end date (YYYY-MM-DD)")

	return cmd
}

func runBacktest(cmd *cobra.Command, cfg *config.Config) error {
	bc, err := cfg.BacktestConfig()
	if err != nil {
		return err
	}

	feed, universe, err := loadFeed(cfg.Data)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	if len(universe) == 0 {
		return fmt.Errorf("no bar files found under %s", cfg.Data.Dir)
	}

	src, err := strategies.ByName(cfg.Strategy.Name, strategies.Params(cfg.Strategy.Params))
	if err != nil {
		return err
	}

	o, err := backtest.New(bc, feed, src, universe)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backtesting %d instruments, %s to %s, strategy %s\n\n",
		len(universe), cfg.Backtest.Start, cfg.Backtest.End, cfg.Strategy.Name)

	result := o.Run()

	runID := id.New()
	if err := persist(cfg, runID, result, bc); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	PrintReport(cmd.OutOrStdout(), runID, cfg.Strategy.Name, bc, result)
	return nil
}

// loadFeed reads every bar file under dc.Dir into a memory feed. When
// dc.Codes is set only those instruments are loaded.
func loadFeed(dc config.DataConfig) (*backtest.MemoryFeed, []string, error) {
	entries, err := os.ReadDir(dc.Dir)
	if err != nil {
		return nil, nil, err
	}

	want := make(map[string]bool, len(dc.Codes))
	for _, c := range dc.Codes {
		want[c] = true
	}

	feed := backtest.NewMemoryFeed()
	var universe []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		code := strings.TrimSuffix(e.Name(), ".csv")
		if len(want) > 0 && !want[code] {
			continue
		}

		_, bars, err := market.LoadBarFile(filepath.Join(dc.Dir, e.Name()), market.CSVOptions{GBK: dc.GBK})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if len(bars) == 0 {
			continue
		}

		feed.Add(bars...)
		universe = append(universe, code)
	}

	return feed, universe, nil
}

func persist(cfg *config.Config, runID string, result backtest.Result, bc backtest.Config) error {
	var j journal.Journal

	switch cfg.Journal.Type {
	case "none":
		return nil
	case "csv":
		c, err := journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.NAVFile)
		if err != nil {
			return err
		}
		j = c
	case "sqlite":
		s, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return err
		}
		j = s
	default:
		return fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
	defer j.Close()

	for _, t := range result.Trades {
		if err := j.RecordTrade(journal.FromTrade(runID, t)); err != nil {
			return err
		}
	}
	for _, p := range result.NAV {
		if err := j.RecordNAV(journal.FromNAV(runID, p)); err != nil {
			return err
		}
	}

	if s, ok := j.(*journal.SQLite); ok {
		run := journal.NewRun(runID, cfg.Strategy.Name, bc.Start, bc.End, result.Report)
		if err := s.RecordRun(run); err != nil {
			return err
		}
	}
	return nil
}

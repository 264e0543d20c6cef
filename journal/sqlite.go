package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, code, name, side, quantity, price, gross, commission, stamp_duty, slippage, realized_pl, holding_days, date, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Code, t.Name, t.Side, t.Quantity, t.Price,
		t.Gross, t.Commission, t.StampDuty, t.Slippage, t.RealizedPL,
		t.HoldingDays, t.Date, t.Reason,
	)
	return err
}

func (j *SQLite) RecordNAV(n NAVRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO nav
		(run_id, date, cash, positions_value, total_value)
		VALUES (?, ?, ?, ?, ?)`,
		n.RunID, n.Date, n.Cash, n.PositionsValue, n.TotalValue,
	)
	return err
}

// RecordRun stores the summary row for a finished backtest.
func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, start_date, end_date, initial_capital, final_value,
		 total_return, annualized_return, max_drawdown, sharpe_ratio,
		 sortino_ratio, calmar_ratio, win_rate, profit_loss_ratio, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Start, r.End, r.InitialCapital,
		r.FinalValue, r.TotalReturn, r.AnnualizedReturn, r.MaxDrawdown,
		r.SharpeRatio, r.SortinoRatio, r.CalmarRatio, r.WinRate,
		r.ProfitLossRatio, r.Trades,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

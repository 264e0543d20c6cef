package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, start_date, end_date, initial_capital, final_value,
		       total_return, annualized_return, max_drawdown, sharpe_ratio,
		       sortino_ratio, calmar_ratio, win_rate, profit_loss_ratio, trades
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Start, &r.End,
		&r.InitialCapital, &r.FinalValue, &r.TotalReturn, &r.AnnualizedReturn,
		&r.MaxDrawdown, &r.SharpeRatio, &r.SortinoRatio, &r.CalmarRatio,
		&r.WinRate, &r.ProfitLossRatio, &r.Trades,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListTradesByRun returns a run's trades in date order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, code, name, side, quantity, price, gross,
		       commission, stamp_duty, slippage, realized_pl, holding_days, date, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY date ASC, trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.TradeID, &t.RunID, &t.Code, &t.Name, &t.Side, &t.Quantity,
			&t.Price, &t.Gross, &t.Commission, &t.StampDuty, &t.Slippage,
			&t.RealizedPL, &t.HoldingDays, &t.Date, &t.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNAVByRun returns a run's NAV series in date order.
func (j *SQLite) ListNAVByRun(runID string) ([]NAVRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, cash, positions_value, total_value
		FROM nav
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NAVRecord
	for rows.Next() {
		var n NAVRecord
		if err := rows.Scan(&n.RunID, &n.Date, &n.Cash, &n.PositionsValue, &n.TotalValue); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades and NAV samples to two flat files. It has no
// query support; use the SQLite backend when runs need to be read back.
type CSVJournal struct {
	trades *csv.Writer
	nav    *csv.Writer
	tf, nf *os.File
}

func NewCSV(tradesPath, navPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	nf, err := os.Create(navPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	nw := csv.NewWriter(nf)

	if err := tw.Write([]string{"trade_id", "run_id", "code", "name", "side", "quantity", "price", "gross", "commission", "stamp_duty", "slippage", "realized_pl", "holding_days", "date", "reason"}); err != nil {
		return nil, err
	}
	if err := nw.Write([]string{"run_id", "date", "cash", "positions_value", "total_value"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	nw.Flush()
	if err := nw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, nav: nw, tf: tf, nf: nf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Code,
		t.Name,
		t.Side,
		strconv.FormatInt(t.Quantity, 10),
		f(t.Price),
		f(t.Gross),
		f(t.Commission),
		f(t.StampDuty),
		f(t.Slippage),
		f(t.RealizedPL),
		strconv.Itoa(t.HoldingDays),
		t.Date.Format(time.DateOnly),
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordNAV(n NAVRecord) error {
	err := j.nav.Write([]string{
		n.RunID,
		n.Date.Format(time.DateOnly),
		f(n.Cash),
		f(n.PositionsValue),
		f(n.TotalValue),
	})
	if err != nil {
		return err
	}
	j.nav.Flush()
	return j.nav.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.nav.Flush()
	if err := j.nav.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.nf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}

package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWritesHeadersAndRows(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	navPath := filepath.Join(dir, "nav.csv")

	j, err := NewCSV(tradesPath, navPath)
	require.NoError(t, err)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:  "01T",
		RunID:    "r1",
		Code:     "600519",
		Name:     "Kweichow Moutai",
		Side:     "BUY",
		Quantity: 100,
		Price:    1700.5,
		Gross:    170050,
		Date:     date,
		Reason:   "strategy buy",
	}))
	require.NoError(t, j.RecordNAV(NAVRecord{
		RunID:          "r1",
		Date:           date,
		Cash:           829950,
		PositionsValue: 170050,
		TotalValue:     1000000,
	}))
	require.NoError(t, j.Close())

	trades := readAll(t, tradesPath)
	require.Len(t, trades, 2)
	assert.Equal(t, "trade_id", trades[0][0])
	assert.Equal(t, "600519", trades[1][2])
	assert.Equal(t, "BUY", trades[1][4])
	assert.Equal(t, "100", trades[1][5])
	assert.Equal(t, "1700.5000", trades[1][6])
	assert.Equal(t, "2024-03-15", trades[1][13])

	nav := readAll(t, navPath)
	require.Len(t, nav, 2)
	assert.Equal(t, []string{"run_id", "date", "cash", "positions_value", "total_value"}, nav[0])
	assert.Equal(t, "1000000.0000", nav[1][4])
}

func TestCSVRecordsFlushImmediately(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	navPath := filepath.Join(dir, "nav.csv")

	j, err := NewCSV(tradesPath, navPath)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordNAV(NAVRecord{
		RunID: "r1",
		Date:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}))

	// Rows are readable before Close.
	nav := readAll(t, navPath)
	assert.Len(t, nav, 2)
}

package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writeBarCSV writes one instrument's daily file with the given closes
// on consecutive January 2024 weekdays.
func writeBarCSV(t *testing.T, dir, code string, closes ...float64) {
	t.Helper()
	days := []string{
		"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-08", "2024-01-09", "2024-01-10",
	}
	require.LessOrEqual(t, len(closes), len(days))

	var buf bytes.Buffer
	buf.WriteString("date,open,high,low,close,volume,amount\n")
	for i, c := range closes {
		fmt.Fprintf(&buf, "%s,%.2f,%.2f,%.2f,%.2f,10000,100000\n", days[i], c, c, c, c)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, code+".csv"), buf.Bytes(), 0644))
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantsim.yaml")

	out, err := run(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	// Refuses to overwrite without --force.
	_, err = run(t, "init", path)
	assert.Error(t, err)

	_, err = run(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestBacktestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0755))

	// A steady climber so the momentum entry fires on the third bar.
	writeBarCSV(t, dataDir, "600000", 10.0, 10.5, 11.2, 11.5, 11.8, 12.0, 12.2)

	dbPath := filepath.Join(dir, "run.db")
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
backtest:
  start: "2024-01-02"
  end: "2024-01-10"
  initial_capital: 100000
  max_positions: 2
  max_position_pct: 0.5
data:
  dir: %q
strategy:
  name: momentum
  params:
    period: 2
journal:
  type: sqlite
  db_path: %q
`, dataDir, dbPath)), 0644))

	out, err := run(t, "backtest", "-c", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Backtest Result")
	assert.Contains(t, out, "Run ID:")
	assert.Contains(t, out, "Open Positions")
	assert.Contains(t, out, "600000")

	// The journal database was created.
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestBacktestMissingData(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
backtest:
  start: "2024-01-02"
  end: "2024-01-10"
data:
  dir: %q
strategy:
  name: noop
journal:
  type: none
`, filepath.Join(dir, "empty"))), 0644))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0755))

	_, err := run(t, "backtest", "-c", cfgPath)
	assert.Error(t, err)
}

func TestShowUnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	_, err := run(t, "show", "missing-run", "--db", dbPath)
	assert.Error(t, err)
}

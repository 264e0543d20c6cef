package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	gross REAL NOT NULL,
	commission REAL NOT NULL,
	stamp_duty REAL NOT NULL,
	slippage REAL NOT NULL,
	realized_pl REAL NOT NULL,
	holding_days INTEGER NOT NULL,
	date DATETIME NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nav (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	cash REAL NOT NULL,
	positions_value REAL NOT NULL,
	total_value REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	initial_capital REAL NOT NULL,
	final_value REAL NOT NULL,
	total_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	sortino_ratio REAL NOT NULL,
	calmar_ratio REAL NOT NULL,
	win_rate REAL NOT NULL,
	profit_loss_ratio REAL NOT NULL,
	trades INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, date);
CREATE INDEX IF NOT EXISTS idx_nav_run ON nav(run_id, date);
`

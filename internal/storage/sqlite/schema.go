package sqlite

const Schema = `
CREATE TABLE IF NOT EXISTS records (
	seq INTEGER PRIMARY KEY,
	time TEXT NOT NULL,
	date TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	note TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS check_counts (
	address TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);

INSERT OR IGNORE INTO settings (key, value) VALUES ('rate', '7.2');
`

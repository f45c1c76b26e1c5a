package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per completed crawl
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    source TEXT,
    domain_count INTEGER NOT NULL,
    record_count INTEGER NOT NULL,
    failed_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Link records: output rows of a run, in emission order
CREATE TABLE IF NOT EXISTS link_records (
    record_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    input_url TEXT NOT NULL,
    extracted_url TEXT,             -- NULL when the landing page failed
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    metadata TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_link_records_run ON link_records(run_id);
CREATE INDEX IF NOT EXISTS idx_link_records_category ON link_records(category);
`

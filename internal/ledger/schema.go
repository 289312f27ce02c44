package ledger

// Schema is the DDL for the processing ledger database.
const Schema = `
CREATE TABLE IF NOT EXISTS messages (
    message_id       TEXT PRIMARY KEY,
    processed_at     TEXT NOT NULL,
    relevant         INTEGER NOT NULL DEFAULT 0,
    webhook_sent     INTEGER NOT NULL DEFAULT 0,
    archived         INTEGER NOT NULL DEFAULT 0,
    mean_confidence  REAL NOT NULL DEFAULT 0,
    field_count      INTEGER NOT NULL DEFAULT 0,
    content_hash     TEXT,
    error            TEXT
);

CREATE TABLE IF NOT EXISTS daily_stats (
    date          TEXT PRIMARY KEY,
    processed     INTEGER NOT NULL DEFAULT 0,
    webhook_ok    INTEGER NOT NULL DEFAULT 0,
    webhook_fail  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_messages_processed_at ON messages(processed_at DESC);
`

package store

import "database/sql"

// Timestamps are unix milliseconds so ordering and range filters stay
// plain integer comparisons.
const schema = `
CREATE TABLE IF NOT EXISTS session_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	action TEXT NOT NULL,
	front_end TEXT NOT NULL DEFAULT '',
	seed INTEGER NOT NULL DEFAULT 0,
	attempted INTEGER NOT NULL DEFAULT 0,
	correct INTEGER NOT NULL DEFAULT 0,
	duration_secs INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id);

CREATE TABLE IF NOT EXISTS attempt_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	topic_id TEXT NOT NULL,
	template_id TEXT NOT NULL,
	problem_id TEXT NOT NULL,
	level INTEGER NOT NULL,
	prompt TEXT NOT NULL,
	expected TEXT NOT NULL,
	submitted TEXT NOT NULL,
	correct INTEGER NOT NULL,
	level_change TEXT NOT NULL DEFAULT 'none',
	level_after INTEGER NOT NULL,
	revealed INTEGER NOT NULL DEFAULT 0,
	time_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_attempt_events_topic ON attempt_events(topic_id);
CREATE INDEX IF NOT EXISTS idx_attempt_events_session ON attempt_events(session_id);

CREATE TABLE IF NOT EXISTS llm_request_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT ''
);
`

func migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

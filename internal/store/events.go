package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) stamp(ctx context.Context) (int64, int64, error) {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return 0, 0, err
	}
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return seq, now().UnixMilli(), nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (sequence, timestamp, session_id, action, front_end, seed, attempted, correct, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ts, data.SessionID, data.Action, data.FrontEnd, int64(data.Seed),
		data.Attempted, data.Correct, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	if data.LevelChange == "" {
		data.LevelChange = "none"
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events (sequence, timestamp, session_id, topic_id, template_id, problem_id,
			level, prompt, expected, submitted, correct, level_change, level_after, revealed, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ts, data.SessionID, data.TopicID, data.TemplateID, data.ProblemID,
		data.Level, data.Prompt, data.Expected, data.Submitted, data.Correct,
		data.LevelChange, data.LevelAfter, data.Revealed, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events (sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ts, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) Attempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if opts.TopicID != "" {
		where = append(where, "topic_id = ?")
		args = append(args, opts.TopicID)
	}
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}

	q := `SELECT sequence, timestamp, session_id, topic_id, template_id, problem_id, level, prompt,
		expected, submitted, correct, level_change, level_after, revealed, time_ms
		FROM attempt_events`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec AttemptRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.TopicID, &rec.TemplateID,
			&rec.ProblemID, &rec.Level, &rec.Prompt, &rec.Expected, &rec.Submitted, &rec.Correct,
			&rec.LevelChange, &rec.LevelAfter, &rec.Revealed, &rec.TimeMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) TopicStats(ctx context.Context) ([]TopicStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic_id, COUNT(*), COALESCE(SUM(correct), 0), MAX(level_after), MAX(timestamp)
		 FROM attempt_events GROUP BY topic_id ORDER BY topic_id`)
	if err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	var out []TopicStats
	for rows.Next() {
		var (
			st TopicStats
			ts int64
		)
		if err := rows.Scan(&st.TopicID, &st.Attempted, &st.Correct, &st.HighestLevel, &ts); err != nil {
			return nil, fmt.Errorf("scan topic stats: %w", err)
		}
		st.LastPracticed = time.UnixMilli(ts)
		out = append(out, st)
	}
	return out, rows.Err()
}

const sessionSelect = `SELECT s.session_id, s.front_end, s.timestamp,
	COALESCE((SELECT MAX(e.timestamp) FROM session_events e
		WHERE e.session_id = s.session_id AND e.action = 'end'), 0),
	(SELECT COUNT(*) FROM attempt_events a WHERE a.session_id = s.session_id),
	(SELECT COALESCE(SUM(a.correct), 0) FROM attempt_events a WHERE a.session_id = s.session_id)
	FROM session_events s WHERE s.action = 'start'`

func scanSession(sc interface{ Scan(...any) error }) (SessionRecord, error) {
	var (
		rec          SessionRecord
		start, ended int64
	)
	if err := sc.Scan(&rec.SessionID, &rec.FrontEnd, &start, &ended, &rec.Attempted, &rec.Correct); err != nil {
		return rec, err
	}
	rec.StartedAt = time.UnixMilli(start)
	if ended > 0 {
		rec.EndedAt = time.UnixMilli(ended)
	}
	return rec, nil
}

func (r *eventRepo) Session(ctx context.Context, sessionID string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, sessionSelect+` AND s.session_id = ?`, sessionID)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &rec, nil
}

func (r *eventRepo) Sessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, sessionSelect+` ORDER BY s.sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		 FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

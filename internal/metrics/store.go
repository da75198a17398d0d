package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"deep-travel-collections/internal/shared"
)

// ExecutionMetric records metadata for a single generation call.
type ExecutionMetric struct {
	GeneratorType    string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	OutputChars      int
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// sqliteTime is the timestamp format SQLite's date functions understand.
const sqliteTime = "2006-01-02 15:04:05"

// Record saves a metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO execution_metrics
			(generator_type, model, prompt_tokens, completion_tokens, latency_ms, output_chars, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.GeneratorType, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, m.OutputChars, ts.Format(sqliteTime))
	if err != nil {
		return fmt.Errorf("failed to record execution metric: %w", err)
	}
	return nil
}

// RecordUsage implements llm.UsageRecorder so the store can sit behind the
// metering text-generator decorator. Failures are logged, not surfaced;
// metrics must never break a generation call.
func (s *Store) RecordUsage(meta shared.GeneratorMeta) {
	err := s.Record(ExecutionMetric{
		GeneratorType:    meta.GeneratorType,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
		OutputChars:      meta.OutputChars,
	})
	if err != nil {
		log.Printf("Warning: failed to record usage for %s: %v", meta.GeneratorType, err)
	}
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).UTC().Format(sqliteTime)

	rows, err := s.db.Query(`
		SELECT date(timestamp) AS day,
		       COALESCE(SUM(prompt_tokens), 0),
		       COALESCE(SUM(completion_tokens), 0),
		       COUNT(*)
		FROM execution_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecution); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns the number of rows removed.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).UTC().Format(sqliteTime)

	res, err := s.db.Exec(`DELETE FROM execution_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up execution metrics: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed metrics: %w", err)
	}
	return affected, nil
}

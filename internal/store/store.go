// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordsieve/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// resultSep separates result words in the sessions table.
const resultSep = "\n"

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			list TEXT NOT NULL,
			list_path TEXT NOT NULL,
			strategy TEXT NOT NULL,
			shape_map TEXT NOT NULL,
			corpus_size INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			exhausted INTEGER NOT NULL,
			result TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_steps (
			session_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			feature TEXT NOT NULL,
			answer TEXT NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			before_count INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			PRIMARY KEY (session_id, step)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_steps_feature ON session_steps(feature);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return s.ensureColumn("session_steps", "skipped", "INTEGER NOT NULL DEFAULT 0")
}

// ensureColumn adds a column missing from tables created by older versions.
func (s *Store) ensureColumn(table, column, decl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			_ = rows.Close()
			return err
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
	if found {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// InsertSession stores a finished session and its steps.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, steps []model.StepRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	exhausted := 0
	if rec.Exhausted {
		exhausted = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, list, list_path, strategy, shape_map, corpus_size, remaining, exhausted, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.List,
		rec.ListPath,
		rec.Strategy,
		rec.ShapeMap,
		rec.CorpusSize,
		rec.Remaining,
		exhausted,
		strings.Join(rec.Result, resultSep),
	)
	if err != nil {
		return err
	}

	if len(steps) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_steps (session_id, step, feature, answer, skipped, before_count, remaining)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, st := range steps {
			skipped := 0
			if st.Skipped {
				skipped = 1
			}
			if _, err = stmt.ExecContext(ctx, rec.ID, st.Index, st.Feature, st.Answer, skipped, st.Before, st.Remaining); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListSessions returns finished sessions filtered by cfg, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.List != "" {
		clauses = append(clauses, "list = ?")
		args = append(args, cfg.List)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, list, list_path, strategy, shape_map, corpus_size, remaining, exhausted, result
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var startedAt, endedAt, result string
		var exhausted int
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.List, &rec.ListPath, &rec.Strategy, &rec.ShapeMap,
			&rec.CorpusSize, &rec.Remaining, &exhausted, &result); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Exhausted = exhausted != 0
		if result != "" {
			rec.Result = strings.Split(result, resultSep)
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// ListSteps returns the steps of one session in order.
func (s *Store) ListSteps(ctx context.Context, sessionID string) ([]model.StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, feature, answer, skipped, before_count, remaining
		FROM session_steps
		WHERE session_id = ?
		ORDER BY step ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var steps []model.StepRecord
	for rows.Next() {
		var (
			st      model.StepRecord
			skipped int
		)
		if err := rows.Scan(&st.Index, &st.Feature, &st.Answer, &skipped, &st.Before, &st.Remaining); err != nil {
			return nil, err
		}
		st.Skipped = skipped != 0
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

// ListFeatureAggregates aggregates step counts per feature across sessions.
func (s *Store) ListFeatureAggregates(ctx context.Context, sessionIDs []string) ([]model.FeatureAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT feature, COUNT(*) AS asked, SUM(before_count) AS before_sum, SUM(remaining) AS remaining_sum
		FROM session_steps
		WHERE session_id IN (%s) AND skipped = 0
		GROUP BY feature
		ORDER BY feature`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.FeatureAggregate
	for rows.Next() {
		var agg model.FeatureAggregate
		if err := rows.Scan(&agg.Feature, &agg.Asked, &agg.BeforeSum, &agg.RemainingSum); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

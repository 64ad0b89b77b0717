package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/halcyonhq/halcyon/models"
	_ "modernc.org/sqlite"
)

// SQLiteHistoryStore implements HistoryStore using SQLite for persistence.
// Save replaces the stored history wholesale inside one transaction, which
// matches the engine's full-recompute-and-persist write pattern.
type SQLiteHistoryStore struct {
	db *sql.DB
}

// NewSQLiteHistoryStore opens (or creates) a history database at path.
// Pass ":memory:" for an in-memory database, mainly for tests.
func NewSQLiteHistoryStore(path string) (*SQLiteHistoryStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteHistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mood_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mood TEXT NOT NULL,
		energy TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		time_of_day TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS task_performance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id TEXT NOT NULL,
		task_type TEXT NOT NULL,
		completion_time TEXT NOT NULL,
		time_of_day TEXT NOT NULL DEFAULT '',
		performance_score REAL,             -- NULL when the caller did not measure it
		extra TEXT                          -- JSON for arbitrary metrics
	);

	CREATE TABLE IF NOT EXISTS optimal_times (
		task_type TEXT NOT NULL,
		rank INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		time_label TEXT NOT NULL,
		score REAL NOT NULL,
		PRIMARY KEY (task_type, rank)
	);

	CREATE INDEX IF NOT EXISTS idx_task_performance_type ON task_performance(task_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the full history in insertion order.
func (s *SQLiteHistoryStore) Load() (models.History, error) {
	history := models.NewHistory()

	rows, err := s.db.Query(`SELECT mood, energy, timestamp, time_of_day FROM mood_entries ORDER BY id`)
	if err != nil {
		return history, fmt.Errorf("query mood entries: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var entry models.MoodEntry
		var mood, energy, ts, tod string
		if err := rows.Scan(&mood, &energy, &ts, &tod); err != nil {
			return history, fmt.Errorf("scan mood entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping mood entry with bad timestamp %q: %v\n", ts, err)
			continue
		}
		entry.Mood = models.Mood(mood)
		entry.Energy = models.Energy(energy)
		entry.Timestamp = parsed
		entry.TimeOfDay = models.TimeOfDay(tod)
		history.MoodHistory = append(history.MoodHistory, entry)
	}
	if err := rows.Err(); err != nil {
		return history, fmt.Errorf("iterate mood entries: %w", err)
	}

	perfRows, err := s.db.Query(`SELECT task_id, task_type, completion_time, time_of_day, performance_score, extra FROM task_performance ORDER BY id`)
	if err != nil {
		return history, fmt.Errorf("query task performance: %w", err)
	}
	defer func() { _ = perfRows.Close() }()
	for perfRows.Next() {
		var entry models.PerformanceEntry
		var taskID, taskType, ct, tod string
		var score sql.NullFloat64
		var extra sql.NullString
		if err := perfRows.Scan(&taskID, &taskType, &ct, &tod, &score, &extra); err != nil {
			return history, fmt.Errorf("scan performance entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ct)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping performance entry with bad timestamp %q: %v\n", ct, err)
			continue
		}
		entry.TaskID = taskID
		entry.TaskType = models.TaskTypeKey(taskType)
		entry.CompletionTime = parsed
		entry.TimeOfDay = models.TimeOfDay(tod)
		if score.Valid {
			v := score.Float64
			entry.PerformanceScore = &v
		}
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &entry.Extra); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: dropping unparseable extra metrics for task %s: %v\n", taskID, err)
			}
		}
		history.TaskPerformance = append(history.TaskPerformance, entry)
	}
	if err := perfRows.Err(); err != nil {
		return history, fmt.Errorf("iterate task performance: %w", err)
	}

	slotRows, err := s.db.Query(`SELECT task_type, hour, time_label, score FROM optimal_times ORDER BY task_type, rank`)
	if err != nil {
		return history, fmt.Errorf("query optimal times: %w", err)
	}
	defer func() { _ = slotRows.Close() }()
	for slotRows.Next() {
		var taskType string
		var slot models.OptimalSlot
		if err := slotRows.Scan(&taskType, &slot.Hour, &slot.TimeLabel, &slot.Score); err != nil {
			return history, fmt.Errorf("scan optimal slot: %w", err)
		}
		key := models.TaskTypeKey(taskType)
		history.OptimalTimes[key] = append(history.OptimalTimes[key], slot)
	}
	if err := slotRows.Err(); err != nil {
		return history, fmt.Errorf("iterate optimal times: %w", err)
	}

	return history, nil
}

// Save replaces the stored history wholesale.
func (s *SQLiteHistoryStore) Save(history models.History) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"mood_entries", "task_performance", "optimal_times"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, entry := range history.MoodHistory {
		_, err := tx.Exec(
			`INSERT INTO mood_entries (mood, energy, timestamp, time_of_day) VALUES (?, ?, ?, ?)`,
			string(entry.Mood), string(entry.Energy), entry.Timestamp.Format(time.RFC3339Nano), string(entry.TimeOfDay),
		)
		if err != nil {
			return fmt.Errorf("insert mood entry: %w", err)
		}
	}

	for _, entry := range history.TaskPerformance {
		var score any
		if entry.PerformanceScore != nil {
			score = *entry.PerformanceScore
		}
		var extra any
		if len(entry.Extra) > 0 {
			encoded, err := json.Marshal(entry.Extra)
			if err != nil {
				return fmt.Errorf("marshal extra metrics for task %s: %w", entry.TaskID, err)
			}
			extra = string(encoded)
		}
		_, err := tx.Exec(
			`INSERT INTO task_performance (task_id, task_type, completion_time, time_of_day, performance_score, extra) VALUES (?, ?, ?, ?, ?, ?)`,
			entry.TaskID, string(entry.TaskType), entry.CompletionTime.Format(time.RFC3339Nano), string(entry.TimeOfDay), score, extra,
		)
		if err != nil {
			return fmt.Errorf("insert performance entry: %w", err)
		}
	}

	for taskType, slots := range history.OptimalTimes {
		for rank, slot := range slots {
			_, err := tx.Exec(
				`INSERT INTO optimal_times (task_type, rank, hour, time_label, score) VALUES (?, ?, ?, ?, ?)`,
				string(taskType), rank, slot.Hour, slot.TimeLabel, slot.Score,
			)
			if err != nil {
				return fmt.Errorf("insert optimal slot: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

// Package happiness implements the mood-aware scheduling engine at the
// heart of halcyon. It scores hours of the day from recorded mood/energy
// observations, derives per-task-type optimal time windows, ranks pending
// tasks, and produces current-state recommendations.
package happiness

import (
	"fmt"
	"os"
	"time"

	"github.com/halcyonhq/halcyon/models"
	"github.com/halcyonhq/halcyon/store"
)

// Preferences carries the user's daily rhythm configuration. It is supplied
// at engine construction and immutable for the engine's lifetime.
type Preferences struct {
	WakeHour  int `json:"wakeHour"`
	BedHour   int `json:"bedHour"`
	WorkStart int `json:"workStart"`
	WorkEnd   int `json:"workEnd"`
}

// DefaultPreferences returns the stock daily rhythm: wake 7, bed 23,
// work 9-17.
func DefaultPreferences() Preferences {
	return Preferences{WakeHour: 7, BedHour: 23, WorkStart: 9, WorkEnd: 17}
}

// PerformanceMetrics is the typed metrics bag attached to a completed task.
// Score is optional; readers substitute 0.5 when absent. Extra carries any
// additional fields callers want persisted alongside the record.
type PerformanceMetrics struct {
	Score *float64
	Extra map[string]any
}

// Engine owns one user's observation history and derived caches. It is not
// safe for concurrent use: callers are expected to run it inside a single
// logical actor with at most one in-flight mutation at a time, since every
// write is a full read-recompute-persist cycle.
type Engine struct {
	st      store.HistoryStore
	now     func() time.Time
	prefs   Preferences
	history models.History
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPreferences sets the user's daily rhythm configuration.
func WithPreferences(prefs Preferences) Option {
	return func(e *Engine) { e.prefs = prefs }
}

// New constructs an engine over the given history store, loading any
// persisted history. A nil store yields a purely in-memory engine. A store
// that fails to load degrades to an empty history with a warning; the
// engine must always be able to answer.
func New(st store.HistoryStore, opts ...Option) *Engine {
	e := &Engine{
		st:    st,
		now:   time.Now,
		prefs: DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.history = models.NewHistory()
	if st != nil {
		history, err := st.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load history, starting empty: %v\n", err)
		} else {
			e.history = history
		}
	}
	return e
}

// Preferences returns the engine's daily rhythm configuration.
func (e *Engine) Preferences() Preferences {
	return e.prefs
}

// History returns the engine's current in-memory history.
func (e *Engine) History() models.History {
	return e.history
}

// RecordObservation appends a mood/energy observation timestamped now,
// recomputes the optimal-times table, and persists. It never fails:
// unknown labels are accepted at neutral weight and persistence errors are
// logged, not propagated.
func (e *Engine) RecordObservation(mood models.Mood, energy models.Energy) models.MoodEntry {
	return e.RecordObservationAt(mood, energy, e.now())
}

// RecordObservationAt is RecordObservation with an explicit timestamp.
// Out-of-order timestamps are tolerated; aggregation never assumes the
// history is chronologically sorted.
func (e *Engine) RecordObservationAt(mood models.Mood, energy models.Energy, at time.Time) models.MoodEntry {
	entry := models.MoodEntry{
		Mood:      mood,
		Energy:    energy,
		Timestamp: at,
		TimeOfDay: models.TimeOfDayForHour(at.Hour()),
	}
	e.history.MoodHistory = append(e.history.MoodHistory, entry)
	e.history.OptimalTimes = e.computeOptimalTimes()
	e.persist()
	return entry
}

// RecordTaskCompletion appends a performance record for a completed task,
// stamped with the current time and time-of-day bucket, then recomputes
// and persists.
func (e *Engine) RecordTaskCompletion(task models.Task, metrics PerformanceMetrics) models.PerformanceEntry {
	now := e.now()
	entry := models.PerformanceEntry{
		TaskID:           task.ID,
		TaskType:         models.ResolveTaskType(task.Type).Key,
		CompletionTime:   now,
		TimeOfDay:        models.TimeOfDayForHour(now.Hour()),
		PerformanceScore: metrics.Score,
		Extra:            metrics.Extra,
	}
	e.history.TaskPerformance = append(e.history.TaskPerformance, entry)
	e.history.OptimalTimes = e.computeOptimalTimes()
	e.persist()
	return entry
}

// persist writes the full history back to the store. Failures are soft:
// the engine keeps serving from its in-memory state.
func (e *Engine) persist() {
	if e.st == nil {
		return
	}
	if err := e.st.Save(e.history); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not persist history: %v\n", err)
	}
}

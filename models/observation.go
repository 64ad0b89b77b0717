package models

import "time"

// Mood represents a self-reported mood label.
type Mood string

const (
	MoodExcited  Mood = "excited"
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// Energy represents a self-reported energy level.
type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

// Moods lists all known mood labels, best to worst.
func Moods() []Mood {
	return []Mood{MoodExcited, MoodHappy, MoodNeutral, MoodTired, MoodStressed}
}

// Energies lists all known energy levels, highest first.
func Energies() []Energy {
	return []Energy{EnergyHigh, EnergyMedium, EnergyLow}
}

// MoodEntry is a single recorded (mood, energy, timestamp) observation.
// Entries are immutable once recorded and only ever appended to history.
type MoodEntry struct {
	Mood      Mood      `json:"mood"`
	Energy    Energy    `json:"energy"`
	Timestamp time.Time `json:"timestamp"`
	TimeOfDay TimeOfDay `json:"timeOfDay,omitempty"`
}

// PerformanceEntry records how well a completed task went.
// PerformanceScore is on a 0-1 scale where higher is better; a nil score
// means the caller did not measure it and readers substitute 0.5.
type PerformanceEntry struct {
	TaskID           string         `json:"taskId"`
	TaskType         TaskTypeKey    `json:"taskType"`
	CompletionTime   time.Time      `json:"completionTime"`
	TimeOfDay        TimeOfDay      `json:"timeOfDay,omitempty"`
	PerformanceScore *float64       `json:"performanceScore,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// ScoreOrDefault returns the recorded performance score, or 0.5 when none
// was supplied.
func (p PerformanceEntry) ScoreOrDefault() float64 {
	if p.PerformanceScore == nil {
		return 0.5
	}
	return *p.PerformanceScore
}

// OptimalSlot is one cached best-hour entry for a task type.
type OptimalSlot struct {
	Hour      int     `json:"hour"`
	TimeLabel string  `json:"timeLabel"`
	Score     float64 `json:"score"`
}

// History is the full persisted state the scoring engine operates over:
// the append-only observation and performance sequences plus the derived
// optimal-times cache.
type History struct {
	MoodHistory     []MoodEntry                   `json:"moodHistory"`
	TaskPerformance []PerformanceEntry            `json:"taskPerformance"`
	OptimalTimes    map[TaskTypeKey][]OptimalSlot `json:"optimalTimes"`
}

// NewHistory returns an empty history with initialized collections.
func NewHistory() History {
	return History{
		MoodHistory:     []MoodEntry{},
		TaskPerformance: []PerformanceEntry{},
		OptimalTimes:    map[TaskTypeKey][]OptimalSlot{},
	}
}

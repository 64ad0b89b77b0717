package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskPriority represents the priority levels of a pending task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a pending unit of work waiting to be scheduled.
type Task struct {
	ID          string       `json:"id" validate:"required,uuid4"`
	Title       string       `json:"title" validate:"required,min=1,max=255"`
	Type        TaskTypeKey  `json:"type,omitempty"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=low medium high"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time    `json:"updatedAt" validate:"required"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// Done reports whether the task has been completed.
func (t Task) Done() bool {
	return t.CompletedAt != nil
}

// RankedTask pairs a task with the score and suggested time the scheduler
// attached to it. The embedded task is never mutated by scheduling.
type RankedTask struct {
	Task
	Score         float64        `json:"score"`
	SuggestedTime TimeSuggestion `json:"suggestedTime"`
}

// TimeSuggestion is a recommended moment to work on something, with the
// engine's confidence in the suggestion and a short explanation.
type TimeSuggestion struct {
	Time       time.Time `json:"time"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// TaskList represents a persisted collection of pending tasks.
type TaskList struct {
	Tasks      []Task `json:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a pending task with defaulted priority and timestamps.
func NewTask(id, title string) *Task {
	now := time.Now()
	return &Task{
		ID:        id,
		Title:     title,
		Type:      TypeRoutine,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

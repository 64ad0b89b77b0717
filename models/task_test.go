package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateStruct_ValidTask(t *testing.T) {
	task := NewTask(uuid.NewString(), "Write weekly report")
	if err := ValidateStruct(*task); err != nil {
		t.Errorf("Valid task failed validation: %v", err)
	}
}

func TestValidateStruct_InvalidTask(t *testing.T) {
	cases := []struct {
		name string
		task Task
	}{
		{
			name: "missing title",
			task: Task{ID: uuid.NewString(), Priority: PriorityMedium, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		},
		{
			name: "bad priority",
			task: Task{ID: uuid.NewString(), Title: "x", Priority: "urgent", CreatedAt: time.Now(), UpdatedAt: time.Now()},
		},
		{
			name: "non-uuid id",
			task: Task{ID: "not-a-uuid", Title: "x", Priority: PriorityLow, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateStruct(tc.task); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}
}

func TestPerformanceEntryScoreOrDefault(t *testing.T) {
	entry := PerformanceEntry{TaskID: "t1", TaskType: TypeRoutine, CompletionTime: time.Now()}
	if got := entry.ScoreOrDefault(); got != 0.5 {
		t.Errorf("Missing score should default to 0.5, got %v", got)
	}

	score := 0.9
	entry.PerformanceScore = &score
	if got := entry.ScoreOrDefault(); got != 0.9 {
		t.Errorf("Recorded score should be returned as given, got %v", got)
	}
}

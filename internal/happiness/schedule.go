package happiness

import (
	"sort"
	"time"

	"github.com/halcyonhq/halcyon/models"
)

// ScheduleTasks ranks pending tasks by how well they fit right now. The
// score combines priority (0.4), current time-of-day fit (0.2), deadline
// urgency (0.3), and recent historical performance on the same task type
// (0.1). Input tasks are never mutated; each is returned wrapped with its
// score and a suggested time. The sort is stable, so equal scores keep
// their original relative order.
func (e *Engine) ScheduleTasks(tasks []models.Task) []models.RankedTask {
	ranked := make([]models.RankedTask, 0, len(tasks))
	if len(tasks) == 0 {
		return ranked
	}

	now := e.now()
	currentTimeOfDay := models.TimeOfDayForHour(now.Hour())

	for _, task := range tasks {
		info := models.ResolveTaskType(task.Type)

		priorityScore := 1.0
		switch task.Priority {
		case models.PriorityHigh:
			priorityScore = 1.5
		case models.PriorityMedium:
			priorityScore = 1.2
		}

		timeMatch := 0.9
		if info.IdealTimeOfDay == currentTimeOfDay {
			timeMatch = 1.2
		}

		score := priorityScore*0.4 +
			timeMatch*0.2 +
			e.deadlineScore(task.Deadline)*0.3 +
			e.historicalPerformanceScore(info.Key)*0.1

		ranked = append(ranked, models.RankedTask{
			Task:          task,
			Score:         score,
			SuggestedTime: e.OptimalTimeForTask(info.Key, 0),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// deadlineScore is a monotonic urgency function of time remaining until the
// deadline. Overdue tasks score highest; tasks without a deadline sit at a
// low-urgency 0.5.
func (e *Engine) deadlineScore(deadline *time.Time) float64 {
	if deadline == nil {
		return 0.5
	}
	diffHours := deadline.Sub(e.now()).Hours()
	switch {
	case diffHours <= 0:
		return 2.0 // overdue
	case diffHours <= 24:
		return 1.8 // due today
	case diffHours <= 48:
		return 1.5 // due tomorrow
	case diffHours <= 168:
		return 1.2 // due this week
	default:
		return 0.8
	}
}

// historicalPerformanceScore averages the performance of the 5 most recent
// completions of the same task type, defaulting to a neutral 0.5 with no
// matching history.
func (e *Engine) historicalPerformanceScore(taskType models.TaskTypeKey) float64 {
	matching := make([]models.PerformanceEntry, 0)
	for _, entry := range e.history.TaskPerformance {
		if entry.TaskType == taskType {
			matching = append(matching, entry)
		}
	}
	if len(matching) == 0 {
		return 0.5
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].CompletionTime.After(matching[j].CompletionTime)
	})
	if len(matching) > 5 {
		matching = matching[:5]
	}

	sum := 0.0
	for _, entry := range matching {
		sum += entry.ScoreOrDefault()
	}
	return sum / float64(len(matching))
}

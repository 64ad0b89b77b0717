package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/halcyonhq/halcyon/internal/happiness"
	"github.com/halcyonhq/halcyon/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase renders a lowercase enum label for display ("excited" -> "Excited").
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// RenderTaskList renders pending tasks as a table.
func RenderTaskList(tasks []models.Task) string {
	table := Table{
		Headers: []string{"ID", "Title", "Type", "Priority", "Deadline"},
	}
	for _, task := range tasks {
		deadline := "—"
		if task.Deadline != nil {
			deadline = task.Deadline.Format("2006-01-02 15:04")
		}
		table.Rows = append(table.Rows, []string{
			TruncateID(task.ID),
			task.Title,
			models.ResolveTaskType(task.Type).Name,
			string(task.Priority),
			deadline,
		})
	}
	return table.Render()
}

// RenderRankedTasks renders a scheduled task list, best first.
func RenderRankedTasks(ranked []models.RankedTask) string {
	table := Table{
		Headers: []string{"#", "Title", "Type", "Priority", "Score", "Suggested"},
	}
	for i, r := range ranked {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			r.Title,
			models.ResolveTaskType(r.Type).Name,
			string(r.Priority),
			fmt.Sprintf("%.2f", r.Score),
			r.SuggestedTime.Time.Format("Mon 3 PM"),
		})
	}
	return table.Render()
}

// RenderOptimalTimes renders the cached optimal-times table in catalog order.
func RenderOptimalTimes(optimal map[models.TaskTypeKey][]models.OptimalSlot) string {
	table := Table{
		Headers: []string{"Task Type", "Best Hours"},
	}
	for _, info := range models.TaskTypes() {
		slots := optimal[info.Key]
		if len(slots) == 0 {
			table.Rows = append(table.Rows, []string{info.Name, StyleSubtle.Render("no data yet")})
			continue
		}
		parts := make([]string, 0, len(slots))
		for _, slot := range slots {
			parts = append(parts, fmt.Sprintf("%s (%.2f)", slot.TimeLabel, slot.Score))
		}
		table.Rows = append(table.Rows, []string{info.Name, strings.Join(parts, ", ")})
	}
	return table.Render()
}

// RenderTaskTypes renders the fixed task-type catalog.
func RenderTaskTypes() string {
	table := Table{
		Headers: []string{"Key", "Name", "Ideal Moods", "Energy", "Time", "Duration"},
	}
	for _, info := range models.TaskTypes() {
		moods := make([]string, 0, len(info.IdealMoods))
		for _, m := range info.IdealMoods {
			moods = append(moods, string(m))
		}
		table.Rows = append(table.Rows, []string{
			string(info.Key),
			info.Name,
			strings.Join(moods, ", "),
			string(info.IdealEnergy),
			string(info.IdealTimeOfDay),
			fmt.Sprintf("%dm", info.DurationMinutes),
		})
	}
	return table.Render()
}

// RenderRecommendations renders the full current-state summary.
func RenderRecommendations(recs happiness.Recommendations, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(StyleSectionTitle.Render("Current state"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s mood, %s energy, %s (%s)\n",
		TitleCase(string(recs.CurrentState.Mood)),
		string(recs.CurrentState.Energy),
		string(recs.CurrentState.TimeOfDay),
		now.Format("Mon 15:04")))
	sb.WriteString("\n")

	sb.WriteString(StyleSectionTitle.Render("Best fits right now"))
	sb.WriteString("\n")
	for i, rec := range recs.RecommendedTasks {
		sb.WriteString(fmt.Sprintf("  %d. %s (%.2f, ~%dm)\n", i+1, rec.Name, rec.Score, rec.IdealDurationMinutes))
	}
	sb.WriteString("\n")

	sb.WriteString(StyleCalloutBox.Render(recs.Recommendation))
	sb.WriteString("\n\n")

	window := recs.OptimalProductivityWindow
	sb.WriteString(fmt.Sprintf("%s %s (%d%% confidence)\n",
		StyleSubtle.Render("Peak window:"), window.Display, window.Confidence))

	return sb.String()
}

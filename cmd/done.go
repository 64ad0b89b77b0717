/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/halcyonhq/halcyon/internal/happiness"
	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/halcyonhq/halcyon/models"
	"github.com/halcyonhq/halcyon/store"
	"github.com/spf13/cobra"
)

var doneScoreFlag float64

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Complete a task and record how it went",
	Long: `Mark a task as completed. The completion feeds the engine a
performance record for that task type, which sharpens future scheduling.

Pass --score to rate how well the work went (0.0 bad to 1.0 great).
Without it a neutral 0.5 is assumed when the engine reads the record.

With no argument an interactive picker lists pending tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().Float64VarP(&doneScoreFlag, "score", "s", -1, "performance score in [0,1]")
}

func runDone(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var task models.Task
	if len(args) > 0 {
		task, err = resolveTask(s, args[0])
		if err != nil {
			return err
		}
	} else {
		task, err = selectTaskInteractive(s, func(t models.Task) bool { return !t.Done() }, "Which task did you finish")
		if err != nil {
			return err
		}
	}

	if task.Done() {
		return fmt.Errorf("task %q is already completed", ui.TruncateID(task.ID))
	}

	updated, err := s.MarkTaskDone(task.ID)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	var metrics happiness.PerformanceMetrics
	if cmd.Flags().Changed("score") {
		if doneScoreFlag < 0 || doneScoreFlag > 1 {
			return fmt.Errorf("--score must be in [0,1], got %v", doneScoreFlag)
		}
		score := doneScoreFlag
		metrics.Score = &score
	}
	entry := engine.RecordTaskCompletion(updated, metrics)

	if isJSON() {
		return printJSON(map[string]any{"task": updated, "performance": entry})
	}

	cmd.Printf("%s Completed %s (%s, %s)\n",
		ui.StyleSuccess.Render("✔"),
		ui.StyleTitle.Render(updated.Title),
		models.ResolveTaskType(updated.Type).Name,
		entry.TimeOfDay)
	return nil
}

// resolveTask accepts a full task ID or an unambiguous prefix, since tables
// display truncated IDs.
func resolveTask(s store.TaskStore, idOrPrefix string) (models.Task, error) {
	if task, err := s.GetTask(idOrPrefix); err == nil {
		return task, nil
	}

	matches, err := s.ListTasks(func(t models.Task) bool {
		return strings.HasPrefix(t.ID, idOrPrefix)
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to look up task %q: %w", idOrPrefix, err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task found matching %q", idOrPrefix)
	default:
		return models.Task{}, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}

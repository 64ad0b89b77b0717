/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"fmt"

	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/halcyonhq/halcyon/models"
	"github.com/spf13/cobra"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Rank pending tasks by fit",
	Long: `Score every pending task against your recorded rhythm and print
them best-first. Each task gets a suggested time drawn from the hours
you historically perform well at its type.

Examples:
  halcyon schedule
  halcyon schedule --json`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tasks, err := s.ListTasks(func(t models.Task) bool { return !t.Done() })
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	ranked := engine.ScheduleTasks(tasks)

	if isJSON() {
		return printJSON(ranked)
	}

	if len(ranked) == 0 {
		cmd.Println("Nothing to schedule.")
		return nil
	}

	cmd.Print(ui.RenderRankedTasks(ranked))
	if isVerbose() {
		for _, r := range ranked {
			cmd.Printf("  %s %s\n", ui.StyleSubtle.Render(ui.TruncateID(r.ID)+":"), r.SuggestedTime.Reason)
		}
	}
	return nil
}

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

var listAllFlag bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending tasks",
	Long: `List tasks waiting to be scheduled.

By default completed tasks are hidden; pass --all to include them.

Examples:
  halcyon list
  halcyon list --all
  halcyon list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "include completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var filterFn func(models.Task) bool
	if !listAllFlag {
		filterFn = func(t models.Task) bool { return !t.Done() }
	}

	tasks, err := s.ListTasks(filterFn)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if isJSON() {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		cmd.Println("No pending tasks.")
		cmd.Println("Add one with: halcyon add \"Your task here\"")
		return nil
	}

	cmd.Print(ui.RenderTaskList(tasks))
	return nil
}

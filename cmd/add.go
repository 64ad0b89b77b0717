/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/halcyonhq/halcyon/models"
	"github.com/spf13/cobra"
)

var (
	addTypeFlag     string
	addPriorityFlag string
	addDeadlineFlag string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add \"title\"",
	Short: "Add a pending task",
	Long: `Add a task to the pending list.

Types: creative, analytical, routine, learning, planning, physical, social, relaxation
Priority: low, medium, high

Examples:
  halcyon add "Write launch post" --type creative --priority high
  halcyon add "Inbox zero" --type routine --deadline 2025-09-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTypeFlag, "type", "t", "routine", "task type")
	addCmd.Flags().StringVarP(&addPriorityFlag, "priority", "p", "medium", "task priority (low|medium|high)")
	addCmd.Flags().StringVarP(&addDeadlineFlag, "deadline", "d", "", "deadline (RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\")")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("task title must not be empty")
	}

	deadline, err := parseDeadline(addDeadlineFlag)
	if err != nil {
		return err
	}

	taskType := models.TaskTypeKey(strings.ToUpper(addTypeFlag))
	if _, ok := models.TaskTypeByKey(taskType); !ok {
		return fmt.Errorf("unknown task type %q, see 'halcyon types'", addTypeFlag)
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task := models.NewTask("", title)
	task.Type = taskType
	task.Priority = models.TaskPriority(strings.ToLower(addPriorityFlag))
	task.Deadline = deadline

	created, err := s.CreateTask(*task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if isJSON() {
		return printJSON(created)
	}

	cmd.Printf("%s Added %s (%s, %s)\n",
		ui.StyleSuccess.Render("✔"),
		ui.StyleTitle.Render(created.Title),
		models.ResolveTaskType(created.Type).Name,
		ui.TruncateID(created.ID))
	return nil
}

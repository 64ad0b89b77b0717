/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/halcyonhq/halcyon/models"
	"github.com/spf13/cobra"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show the task-type catalog",
	Long: `Show every task type the scheduler knows about, with the moods,
energy level, time of day and duration each type works best with.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	if isJSON() {
		return printJSON(models.TaskTypes())
	}
	cmd.Print(ui.RenderTaskTypes())
	return nil
}

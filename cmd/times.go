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

// timesCmd represents the times command
var timesCmd = &cobra.Command{
	Use:   "times [type]",
	Short: "Show learned optimal hours per task type",
	Long: `Show the top scoring hours for each task type, learned from your
mood and energy history. With a type argument, shows only that type.

Examples:
  halcyon times
  halcyon times creative`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTimes,
}

func init() {
	rootCmd.AddCommand(timesCmd)
}

func runTimes(cmd *cobra.Command, args []string) error {
	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	optimal := engine.OptimalTimes()

	if len(args) > 0 {
		key := models.TaskTypeKey(strings.ToUpper(args[0]))
		info, ok := models.TaskTypeByKey(key)
		if !ok {
			return fmt.Errorf("unknown task type %q, see 'halcyon types'", args[0])
		}
		slots := optimal[key]
		if isJSON() {
			return printJSON(slots)
		}
		if len(slots) == 0 {
			cmd.Printf("No data for %s yet. Record observations with 'halcyon mood'.\n", info.Name)
			return nil
		}
		cmd.Println(ui.StyleSectionTitle.Render(info.Name))
		for i, slot := range slots {
			cmd.Printf("  %d. %s (%.2f)\n", i+1, slot.TimeLabel, slot.Score)
		}
		return nil
	}

	if isJSON() {
		return printJSON(optimal)
	}
	cmd.Print(ui.RenderOptimalTimes(optimal))
	return nil
}

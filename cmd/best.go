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

var bestDaysFlag int

// bestCmd represents the best command
var bestCmd = &cobra.Command{
	Use:   "best <type>",
	Short: "Best time for a task type",
	Long: `Suggest the best time to do a task of the given type, based on your
historical mood and energy at each hour. With no history yet, falls back
to the type's ideal time of day.

Examples:
  halcyon best creative
  halcyon best analytical --days 1   # tomorrow`,
	Args: cobra.ExactArgs(1),
	RunE: runBest,
}

func init() {
	rootCmd.AddCommand(bestCmd)
	bestCmd.Flags().IntVar(&bestDaysFlag, "days", 0, "days ahead to plan for (0 = today)")
}

func runBest(cmd *cobra.Command, args []string) error {
	key := models.TaskTypeKey(strings.ToUpper(args[0]))
	info, ok := models.TaskTypeByKey(key)
	if !ok {
		return fmt.Errorf("unknown task type %q, see 'halcyon types'", args[0])
	}

	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	suggestion := engine.OptimalTimeForTask(key, bestDaysFlag)

	if isJSON() {
		return printJSON(suggestion)
	}

	cmd.Printf("%s %s\n",
		ui.StyleSectionTitle.Render(info.Name),
		suggestion.Time.Format("Mon Jan 2, 3 PM"))
	confidence := suggestion.Confidence * 100
	if confidence > 100 {
		confidence = 100
	}
	cmd.Printf("  Confidence: %.0f%%\n", confidence)
	cmd.Printf("  %s\n", ui.StyleSubtle.Render(suggestion.Reason))
	return nil
}

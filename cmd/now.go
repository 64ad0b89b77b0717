/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"time"

	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "What should you work on right now",
	Long: `Estimate your current mood and energy from your three most recent
observations and recommend the task types that fit best, along with your
peak productivity window.

Examples:
  halcyon now
  halcyon now --json`,
	Args: cobra.NoArgs,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	recs := engine.CurrentRecommendations()

	if isJSON() {
		return printJSON(recs)
	}

	cmd.Print(ui.RenderRecommendations(recs, time.Now()))
	return nil
}

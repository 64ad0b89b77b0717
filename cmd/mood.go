/*
Copyright © 2025 Halcyon Authors
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/halcyonhq/halcyon/internal/ui"
	"github.com/halcyonhq/halcyon/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var moodAtFlag string

// moodCmd represents the mood command
var moodCmd = &cobra.Command{
	Use:   "mood [mood] [energy]",
	Short: "Record how you feel right now",
	Long: `Record a mood and energy observation. The engine learns your daily
rhythm from these and uses it everywhere else.

Moods:    excited, happy, neutral, tired, stressed
Energy:   high, medium, low

Run without arguments for interactive pickers.

Examples:
  halcyon mood                      # interactive
  halcyon mood happy high
  halcyon mood tired low --at 2025-08-29T22:30:00Z`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMood,
}

func init() {
	rootCmd.AddCommand(moodCmd)
	moodCmd.Flags().StringVar(&moodAtFlag, "at", "", "record the observation at this RFC3339 timestamp instead of now")
}

func runMood(cmd *cobra.Command, args []string) error {
	mood, energy, err := resolveMoodArgs(args)
	if err != nil {
		return err
	}

	engine, hs, err := newEngine()
	if err != nil {
		return err
	}
	defer func() { _ = hs.Close() }()

	var entry models.MoodEntry
	if moodAtFlag != "" {
		at, err := time.Parse(time.RFC3339, moodAtFlag)
		if err != nil {
			return fmt.Errorf("invalid --at timestamp: %w", err)
		}
		entry = engine.RecordObservationAt(mood, energy, at)
	} else {
		entry = engine.RecordObservation(mood, energy)
	}

	if isJSON() {
		return printJSON(entry)
	}

	cmd.Printf("%s Recorded %s / %s energy at %s (%s).\n",
		ui.StyleSuccess.Render("✔"),
		entry.Mood, entry.Energy,
		entry.Timestamp.Format("15:04"), entry.TimeOfDay)

	recs := engine.CurrentRecommendations()
	cmd.Println(ui.StyleSubtle.Render(recs.Recommendation))
	return nil
}

// resolveMoodArgs fills in missing mood/energy via interactive pickers.
func resolveMoodArgs(args []string) (models.Mood, models.Energy, error) {
	var mood models.Mood
	var energy models.Energy

	if len(args) > 0 {
		mood = models.Mood(args[0])
		if !validMood(mood) {
			return "", "", fmt.Errorf("unknown mood %q (want one of %v)", args[0], models.Moods())
		}
	} else {
		selected, err := selectLabel("How do you feel", moodStrings())
		if err != nil {
			return "", "", err
		}
		mood = models.Mood(selected)
	}

	if len(args) > 1 {
		energy = models.Energy(args[1])
		if !validEnergy(energy) {
			return "", "", fmt.Errorf("unknown energy %q (want one of %v)", args[1], models.Energies())
		}
	} else {
		selected, err := selectLabel("Energy level", energyStrings())
		if err != nil {
			return "", "", err
		}
		energy = models.Energy(selected)
	}

	return mood, energy, nil
}

func selectLabel(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return result, nil
}

func validMood(m models.Mood) bool {
	for _, known := range models.Moods() {
		if m == known {
			return true
		}
	}
	return false
}

func validEnergy(e models.Energy) bool {
	for _, known := range models.Energies() {
		if e == known {
			return true
		}
	}
	return false
}

func moodStrings() []string {
	moods := models.Moods()
	out := make([]string, len(moods))
	for i, m := range moods {
		out[i] = string(m)
	}
	return out
}

func energyStrings() []string {
	energies := models.Energies()
	out := make([]string, len(energies))
	for i, e := range energies {
		out[i] = string(e)
	}
	return out
}

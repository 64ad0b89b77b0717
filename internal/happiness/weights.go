package happiness

import (
	"fmt"

	"github.com/halcyonhq/halcyon/models"
)

// Mood and energy weights. Unknown labels fall back to a neutral 1.0 so a
// bad or future label never rejects a recording.
var moodWeights = map[models.Mood]float64{
	models.MoodExcited:  1.2,
	models.MoodHappy:    1.1,
	models.MoodNeutral:  1.0,
	models.MoodTired:    0.8,
	models.MoodStressed: 0.6,
}

var energyWeights = map[models.Energy]float64{
	models.EnergyHigh:   1.2,
	models.EnergyMedium: 1.0,
	models.EnergyLow:    0.7,
}

// moodWeight returns the numeric weight for a mood label, 1.0 if unknown.
func moodWeight(mood models.Mood) float64 {
	if w, ok := moodWeights[mood]; ok {
		return w
	}
	return 1.0
}

// energyWeight returns the numeric weight for an energy level, 1.0 if unknown.
func energyWeight(energy models.Energy) float64 {
	if w, ok := energyWeights[energy]; ok {
		return w
	}
	return 1.0
}

// moodLabelForScore translates an averaged numeric mood score back into a
// discrete label. The bucketing is lossy and order-dependent; ties go to
// the higher label (1.1 is excited, 1.0 is happy).
func moodLabelForScore(score float64) models.Mood {
	switch {
	case score >= 1.1:
		return models.MoodExcited
	case score >= 1.0:
		return models.MoodHappy
	case score >= 0.9:
		return models.MoodNeutral
	case score >= 0.7:
		return models.MoodTired
	default:
		return models.MoodStressed
	}
}

// energyLabelForScore classifies an averaged energy weight.
func energyLabelForScore(score float64) models.Energy {
	switch {
	case score > 1.1:
		return models.EnergyHigh
	case score > 0.9:
		return models.EnergyMedium
	default:
		return models.EnergyLow
	}
}

// timeLabel renders an hour of day as a 12-hour clock label such as "2 PM",
// with no leading zero and no minutes.
func timeLabel(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, period)
}

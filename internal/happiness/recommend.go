package happiness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halcyonhq/halcyon/models"
)

// CurrentState summarizes how the user is doing right now, averaged over
// the most recent observations.
type CurrentState struct {
	Mood      models.Mood      `json:"mood"`
	Energy    models.Energy    `json:"energy"`
	TimeOfDay models.TimeOfDay `json:"timeOfDay"`
}

// TypeRecommendation scores one task type against the current state.
type TypeRecommendation struct {
	Type                 models.TaskTypeKey `json:"type"`
	Name                 string             `json:"name"`
	Score                float64            `json:"score"`
	IdealDurationMinutes int                `json:"idealDurationMinutes"`
}

// Recommendations is the full current-state summary: what the user's state
// looks like, which task types fit it best, a human-readable suggestion,
// and the best productivity window found in history.
type Recommendations struct {
	CurrentState              CurrentState         `json:"currentState"`
	RecommendedTasks          []TypeRecommendation `json:"recommendedTasks"`
	Recommendation            string               `json:"recommendation"`
	OptimalProductivityWindow Window               `json:"optimalProductivityWindow"`
}

// CurrentRecommendations averages the 3 most recent observations into a
// current mood/energy state, ranks every task type against it, and picks a
// recommendation message. With no observations at all, both axes default
// to a neutral 1.0.
func (e *Engine) CurrentRecommendations() Recommendations {
	now := e.now()
	currentTimeOfDay := models.TimeOfDayForHour(now.Hour())

	recent := make([]models.MoodEntry, len(e.history.MoodHistory))
	copy(recent, e.history.MoodHistory)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > 3 {
		recent = recent[:3]
	}

	avgMood, avgEnergy := 1.0, 1.0
	if len(recent) > 0 {
		moodSum, energySum := 0.0, 0.0
		for _, entry := range recent {
			moodSum += moodWeight(entry.Mood)
			energySum += energyWeight(entry.Energy)
		}
		avgMood = moodSum / float64(len(recent))
		avgEnergy = energySum / float64(len(recent))
	}

	moodLabel := moodLabelForScore(avgMood)
	energyLabel := energyLabelForScore(avgEnergy)

	recommended := make([]TypeRecommendation, 0, 8)
	for _, info := range models.TaskTypes() {
		score := 1.0
		if info.IdealTimeOfDay == currentTimeOfDay {
			score *= 1.2
		}
		if info.MatchesMood(moodLabel) {
			score *= 1.3
		}
		if info.IdealEnergy == energyLabel {
			score *= 1.2
		}
		recommended = append(recommended, TypeRecommendation{
			Type:                 info.Key,
			Name:                 info.Name,
			Score:                score,
			IdealDurationMinutes: info.DurationMinutes,
		})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].Score > recommended[j].Score
	})
	top := recommended
	if len(top) > 3 {
		top = top[:3]
	}

	return Recommendations{
		CurrentState: CurrentState{
			Mood:      moodLabel,
			Energy:    energyLabel,
			TimeOfDay: currentTimeOfDay,
		},
		RecommendedTasks:          top,
		Recommendation:            recommendationMessage(moodLabel, energyLabel, top),
		OptimalProductivityWindow: e.ProductivityWindow(),
	}
}

// recommendationMessage selects the suggestion text for a (mood, energy)
// combination, falling back to naming the top-ranked task types.
func recommendationMessage(mood models.Mood, energy models.Energy, top []TypeRecommendation) string {
	switch {
	case mood == models.MoodStressed && energy == models.EnergyLow:
		return "You seem to be feeling stressed with low energy. Consider taking a short break or doing a relaxing activity to recharge."
	case mood == models.MoodExcited && energy == models.EnergyHigh:
		return "You're feeling great with high energy! This is a perfect time to tackle challenging or creative tasks."
	case energy == models.EnergyHigh:
		return fmt.Sprintf("With your current energy level, you'd be great at %s or %s right now.",
			strings.ToLower(top[0].Name), strings.ToLower(top[1].Name))
	case energy == models.EnergyLow:
		return fmt.Sprintf("You might want to focus on lighter tasks like %s or take a short break to recharge.",
			strings.ToLower(top[0].Name))
	default:
		return fmt.Sprintf("Based on your current state, consider working on %s or %s.",
			strings.ToLower(top[0].Name), strings.ToLower(top[1].Name))
	}
}

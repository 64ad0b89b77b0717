package happiness

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/halcyonhq/halcyon/models"
)

// hourStats aggregates the observations recorded in one hour-of-day bucket,
// pooled across every day in history.
type hourStats struct {
	moodSum   float64
	energySum float64
	count     int
}

func (h hourStats) avgMood() float64 {
	return h.moodSum / float64(h.count)
}

func (h hourStats) avgEnergy() float64 {
	return h.energySum / float64(h.count)
}

// statsByHour buckets the full mood history by integer hour of day.
func (e *Engine) statsByHour() [24]hourStats {
	var stats [24]hourStats
	for _, entry := range e.history.MoodHistory {
		hour := entry.Timestamp.Hour()
		stats[hour].moodSum += moodWeight(entry.Mood)
		stats[hour].energySum += energyWeight(entry.Energy)
		stats[hour].count++
	}
	return stats
}

// ComputeOptimalTimes recomputes the per-task-type optimal hours table from
// the full observation history, caches it on the engine, and persists it.
func (e *Engine) ComputeOptimalTimes() map[models.TaskTypeKey][]models.OptimalSlot {
	e.history.OptimalTimes = e.computeOptimalTimes()
	e.persist()
	return e.history.OptimalTimes
}

func (e *Engine) computeOptimalTimes() map[models.TaskTypeKey][]models.OptimalSlot {
	stats := e.statsByHour()
	optimal := make(map[models.TaskTypeKey][]models.OptimalSlot, 8)

	type candidate struct {
		hour  int
		score float64
	}

	for _, info := range models.TaskTypes() {
		var candidates []candidate

		for hour := 0; hour < 24; hour++ {
			data := stats[hour]
			if data.count == 0 {
				continue
			}

			avgMood := data.avgMood()
			avgEnergy := data.avgEnergy()
			score := (avgMood + avgEnergy) / 2

			// Bonus for matching the task type's ideal time of day.
			if info.IdealTimeOfDay == models.TimeOfDayForHour(hour) {
				score *= 1.2
			}

			// How well this hour's average energy fits the ideal level.
			var energyMatch float64
			switch info.IdealEnergy {
			case models.EnergyHigh:
				energyMatch = avgEnergy
			case models.EnergyMedium:
				energyMatch = 1 - math.Abs(0.5-avgEnergy)*2
			default:
				energyMatch = 1 - avgEnergy
			}

			moodMatch := 1.0
			if info.MatchesMood(moodLabelForScore(avgMood)) {
				moodMatch = 1.2
			}

			final := score*0.6 + energyMatch*0.2 + moodMatch*0.2
			candidates = append(candidates, candidate{hour: hour, score: final})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		if len(candidates) > 3 {
			candidates = candidates[:3]
		}

		slots := make([]models.OptimalSlot, 0, len(candidates))
		for _, c := range candidates {
			slots = append(slots, models.OptimalSlot{
				Hour:      c.hour,
				TimeLabel: timeLabel(c.hour),
				Score:     math.Round(c.score*100) / 100,
			})
		}
		optimal[info.Key] = slots
	}

	return optimal
}

// OptimalTimes returns the cached optimal-times table.
func (e *Engine) OptimalTimes() map[models.TaskTypeKey][]models.OptimalSlot {
	return e.history.OptimalTimes
}

// OptimalTimeForTask suggests when to perform a task of the given type,
// dayOffset days from today. With no history for the type it falls back to
// a fixed default hour for the type's ideal time of day at confidence 0.5.
// When every cached slot is earlier than the current hour, the best-ranked
// slot is returned even though it points at a past hour of the target day.
func (e *Engine) OptimalTimeForTask(taskType models.TaskTypeKey, dayOffset int) models.TimeSuggestion {
	now := e.now()
	info := models.ResolveTaskType(taskType)
	slots := e.history.OptimalTimes[info.Key]

	if len(slots) == 0 {
		var hour int
		switch info.IdealTimeOfDay {
		case models.Morning:
			hour = 10
		case models.Afternoon:
			hour = 14
		case models.Evening:
			hour = 19
		default:
			hour = 10
		}
		return models.TimeSuggestion{
			Time:       atHour(now.AddDate(0, 0, dayOffset), hour),
			Confidence: 0.5,
			Reason:     "Using default time due to insufficient data",
		}
	}

	best := slots[0]
	for _, slot := range slots {
		if slot.Hour > now.Hour() {
			best = slot
			break
		}
	}

	return models.TimeSuggestion{
		Time:       atHour(now.AddDate(0, 0, dayOffset), best.Hour),
		Confidence: best.Score,
		Reason:     fmt.Sprintf("Based on your historical mood and energy patterns, this is an optimal time for %s.", strings.ToLower(info.Name)),
	}
}

// atHour returns t with its clock set to hour:00:00.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

package happiness

import (
	"fmt"
	"math"
)

// Window is a contiguous span of hours judged most productive from history.
// Confidence is a 0-100 percentage.
type Window struct {
	StartHour  int    `json:"startHour"`
	EndHour    int    `json:"endHour"`
	Display    string `json:"display"`
	Confidence int    `json:"confidence"`
}

// ProductivityWindow scans every contiguous window of 1-4 hours (start
// hours wrap modulo 24) and returns the best-scoring one. A window's score
// averages (avgMood+avgEnergy)/2 over only the hours that have at least
// one observation, then gets a linear length bonus of windowSize*0.1.
// Replacement requires a strictly greater score, so exact ties keep the
// shorter, earlier-starting window found first. With a completely empty
// history nothing beats the score-zero default of 9:00-11:00.
func (e *Engine) ProductivityWindow() Window {
	stats := e.statsByHour()

	bestStart, bestEnd := 9, 11
	bestScore := 0.0

	for windowSize := 1; windowSize <= 4; windowSize++ {
		for startHour := 0; startHour < 24; startHour++ {
			totalScore := 0.0
			validHours := 0

			for h := startHour; h < startHour+windowSize; h++ {
				data := stats[h%24]
				if data.count > 0 {
					totalScore += (data.avgMood() + data.avgEnergy()) / 2
					validHours++
				}
			}

			avgScore := 0.0
			if validHours > 0 {
				avgScore = totalScore / float64(validHours)
			}
			windowScore := avgScore * (1 + float64(windowSize)*0.1)

			if windowScore > bestScore {
				bestStart = startHour
				bestEnd = (startHour + windowSize) % 24
				bestScore = windowScore
			}
		}
	}

	confidence := int(math.Round(bestScore * 50))
	if confidence > 100 {
		confidence = 100
	}

	return Window{
		StartHour:  bestStart,
		EndHour:    bestEnd,
		Display:    fmt.Sprintf("%s - %s", timeLabel(bestStart), timeLabel(bestEnd)),
		Confidence: confidence,
	}
}

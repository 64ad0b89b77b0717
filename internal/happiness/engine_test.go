package happiness

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/halcyonhq/halcyon/models"
	"github.com/halcyonhq/halcyon/store"
)

// fixedClock returns a clock function pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEngine(now time.Time) *Engine {
	return New(nil, WithClock(fixedClock(now)))
}

func TestMoodLabelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Mood
	}{
		{1.2, models.MoodExcited},
		{1.1, models.MoodExcited},
		{1.05, models.MoodHappy},
		{1.0, models.MoodHappy},
		{0.95, models.MoodNeutral},
		{0.9, models.MoodNeutral},
		{0.8, models.MoodTired},
		{0.7, models.MoodTired},
		{0.69, models.MoodStressed},
		{0.0, models.MoodStressed},
		{-1.0, models.MoodStressed},
	}

	for _, tc := range cases {
		if got := moodLabelForScore(tc.score); got != tc.want {
			t.Errorf("moodLabelForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestWeightsDefaultToNeutral(t *testing.T) {
	if got := moodWeight("ecstatic"); got != 1.0 {
		t.Errorf("Unknown mood should weigh 1.0, got %v", got)
	}
	if got := energyWeight("supercharged"); got != 1.0 {
		t.Errorf("Unknown energy should weigh 1.0, got %v", got)
	}
	if got := moodWeight(models.MoodStressed); got != 0.6 {
		t.Errorf("Stressed should weigh 0.6, got %v", got)
	}
}

func TestTimeLabel(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{9, "9 AM"},
		{12, "12 PM"},
		{14, "2 PM"},
		{23, "11 PM"},
	}
	for _, tc := range cases {
		if got := timeLabel(tc.hour); got != tc.want {
			t.Errorf("timeLabel(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestComputeOptimalTimes_MatchingHourRanksTop(t *testing.T) {
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	// Excited/high at 9 AM on three different days: ideal conditions for
	// creative work (morning, high energy, excited mood).
	for day := 1; day <= 3; day++ {
		e.RecordObservationAt(models.MoodExcited, models.EnergyHigh,
			time.Date(2026, 3, day, 9, 15, 0, 0, time.UTC))
	}

	optimal := e.ComputeOptimalTimes()
	slots := optimal[models.TypeCreative]
	if len(slots) == 0 {
		t.Fatal("Expected at least one optimal slot for CREATIVE")
	}
	if slots[0].Hour != 9 {
		t.Errorf("Top CREATIVE hour = %d, want 9", slots[0].Hour)
	}
	if slots[0].TimeLabel != "9 AM" {
		t.Errorf("Top CREATIVE label = %q, want \"9 AM\"", slots[0].TimeLabel)
	}

	// base (1.2+1.2)/2 = 1.2, x1.2 morning bonus = 1.44;
	// energyMatch 1.2, moodMatch 1.2 -> 1.44*0.6 + 1.2*0.2 + 1.2*0.2 = 1.34
	if slots[0].Score != 1.34 {
		t.Errorf("Top CREATIVE score = %v, want 1.34", slots[0].Score)
	}
}

func TestComputeOptimalTimes_EmptyHistory(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))
	optimal := e.ComputeOptimalTimes()
	for _, info := range models.TaskTypes() {
		if len(optimal[info.Key]) != 0 {
			t.Errorf("Expected no slots for %s on empty history", info.Key)
		}
	}
}

func TestOptimalTimeForTask_NoHistoryFallback(t *testing.T) {
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	suggestion := e.OptimalTimeForTask(models.TypeCreative, 0)
	if suggestion.Confidence != 0.5 {
		t.Errorf("Fallback confidence = %v, want 0.5", suggestion.Confidence)
	}
	if !strings.Contains(suggestion.Reason, "insufficient data") {
		t.Errorf("Fallback reason should mention insufficient data, got %q", suggestion.Reason)
	}
	if suggestion.Time.Hour() != 10 {
		t.Errorf("CREATIVE fallback hour = %d, want 10 (morning default)", suggestion.Time.Hour())
	}

	evening := e.OptimalTimeForTask(models.TypeRelaxation, 0)
	if evening.Time.Hour() != 19 {
		t.Errorf("RELAXATION fallback hour = %d, want 19 (evening default)", evening.Time.Hour())
	}
}

func TestOptimalTimeForTask_DayOffsetAndPastFallback(t *testing.T) {
	// Observations only at 9 AM; with the clock at 6 PM every cached slot
	// is already past, so the best-ranked slot is returned even though it
	// points at a past hour of the day.
	now := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)
	e := newTestEngine(now)
	e.RecordObservationAt(models.MoodHappy, models.EnergyHigh,
		time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))

	suggestion := e.OptimalTimeForTask(models.TypeCreative, 0)
	if suggestion.Time.Hour() != 9 {
		t.Errorf("Past-fallback hour = %d, want 9", suggestion.Time.Hour())
	}
	if suggestion.Time.Day() != now.Day() {
		t.Errorf("dayOffset 0 should stay on the current day, got %v", suggestion.Time)
	}

	tomorrow := e.OptimalTimeForTask(models.TypeCreative, 1)
	if tomorrow.Time.Day() != now.Day()+1 {
		t.Errorf("dayOffset 1 should land on the next day, got %v", tomorrow.Time)
	}
}

func TestScheduleTasks_EmptyInput(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	ranked := e.ScheduleTasks(nil)
	if len(ranked) != 0 {
		t.Errorf("Empty input should produce empty output, got %d", len(ranked))
	}
}

func TestScheduleTasks_PreservesAllTasks(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	tasks := []models.Task{
		{ID: "a", Title: "A", Type: models.TypeCreative, Priority: models.PriorityLow},
		{ID: "b", Title: "B", Type: models.TypeRoutine, Priority: models.PriorityHigh},
		{ID: "c", Title: "C", Type: models.TypePhysical, Priority: models.PriorityMedium},
	}
	ranked := e.ScheduleTasks(tasks)

	if len(ranked) != len(tasks) {
		t.Fatalf("Output length %d, want %d", len(ranked), len(tasks))
	}
	seen := map[string]bool{}
	for _, r := range ranked {
		if seen[r.ID] {
			t.Errorf("Task %s appears more than once", r.ID)
		}
		seen[r.ID] = true
	}
	for _, task := range tasks {
		if !seen[task.ID] {
			t.Errorf("Task %s was dropped", task.ID)
		}
	}
}

func TestScheduleTasks_DeadlineUrgency(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	overdue := now.Add(-24 * time.Hour)
	distant := now.Add(3 * 7 * 24 * time.Hour)

	tasks := []models.Task{
		{ID: "later", Title: "Due in three weeks", Type: models.TypeRoutine, Priority: models.PriorityMedium, Deadline: &distant},
		{ID: "overdue", Title: "Due yesterday", Type: models.TypeRoutine, Priority: models.PriorityMedium, Deadline: &overdue},
	}

	ranked := e.ScheduleTasks(tasks)
	if ranked[0].ID != "overdue" {
		t.Errorf("Overdue task should rank first, got %s", ranked[0].ID)
	}
	if !(ranked[0].Score > ranked[1].Score) {
		t.Errorf("Overdue score %v should strictly exceed %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestScheduleTasks_StableForTies(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	tasks := []models.Task{
		{ID: "first", Title: "First", Type: models.TypeRoutine, Priority: models.PriorityMedium},
		{ID: "second", Title: "Second", Type: models.TypeRoutine, Priority: models.PriorityMedium},
	}
	ranked := e.ScheduleTasks(tasks)
	if ranked[0].ID != "first" || ranked[1].ID != "second" {
		t.Errorf("Equal scores should keep input order, got %s then %s", ranked[0].ID, ranked[1].ID)
	}
}

func TestDeadlineScoreBands(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	cases := []struct {
		name     string
		deadline *time.Time
		want     float64
	}{
		{"missing", nil, 0.5},
		{"overdue", at(-time.Hour), 2.0},
		{"due today", at(12 * time.Hour), 1.8},
		{"due tomorrow", at(36 * time.Hour), 1.5},
		{"due this week", at(100 * time.Hour), 1.2},
		{"not urgent", at(200 * time.Hour), 0.8},
	}
	for _, tc := range cases {
		if got := e.deadlineScore(tc.deadline); got != tc.want {
			t.Errorf("%s: deadlineScore = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHistoricalPerformanceScore(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	if got := e.historicalPerformanceScore(models.TypeCreative); got != 0.5 {
		t.Errorf("No history should score 0.5, got %v", got)
	}

	// Seven completions; only the 5 most recent should count, and the
	// unmeasured one contributes the 0.5 default.
	scores := []float64{0.1, 0.1, 1.0, 1.0, 1.0, 1.0}
	for i, s := range scores {
		score := s
		e.history.TaskPerformance = append(e.history.TaskPerformance, models.PerformanceEntry{
			TaskID:           "t",
			TaskType:         models.TypeCreative,
			CompletionTime:   now.Add(time.Duration(i) * time.Hour),
			PerformanceScore: &score,
		})
	}
	e.history.TaskPerformance = append(e.history.TaskPerformance, models.PerformanceEntry{
		TaskID:         "unmeasured",
		TaskType:       models.TypeCreative,
		CompletionTime: now.Add(10 * time.Hour),
	})

	// Most recent five: unmeasured (0.5) and four 1.0s -> 0.9.
	got := e.historicalPerformanceScore(models.TypeCreative)
	if got < 0.899 || got > 0.901 {
		t.Errorf("historicalPerformanceScore = %v, want 0.9", got)
	}
}

func TestProductivityWindow_EmptyHistoryDefault(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	window := e.ProductivityWindow()
	if window.StartHour != 9 || window.EndHour != 11 {
		t.Errorf("Default window = %d-%d, want 9-11", window.StartHour, window.EndHour)
	}
	if window.Confidence != 0 {
		t.Errorf("Default window confidence = %d, want 0", window.Confidence)
	}
	if window.Display != "9 AM - 11 AM" {
		t.Errorf("Default window display = %q, want \"9 AM - 11 AM\"", window.Display)
	}
}

func TestProductivityWindow_SingleHourOfData(t *testing.T) {
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	e.RecordObservationAt(models.MoodExcited, models.EnergyHigh,
		time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))

	// Every window containing hour 9 averages the same 1.2, so the size-4
	// length bonus wins and the first such window starts at hour 6.
	window := e.ProductivityWindow()
	if window.StartHour != 6 || window.EndHour != 10 {
		t.Errorf("Window = %d-%d, want 6-10", window.StartHour, window.EndHour)
	}
	// 1.2 * 1.4 * 50 = 84
	if window.Confidence != 84 {
		t.Errorf("Confidence = %d, want 84", window.Confidence)
	}
}

func TestCurrentRecommendations_EmptyHistory(t *testing.T) {
	// Neutral 1.0 on both axes: mood "happy" (>=1.0), energy "medium".
	e := newTestEngine(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	recs := e.CurrentRecommendations()

	if recs.CurrentState.Mood != models.MoodHappy {
		t.Errorf("Empty-history mood = %q, want happy", recs.CurrentState.Mood)
	}
	if recs.CurrentState.Energy != models.EnergyMedium {
		t.Errorf("Empty-history energy = %q, want medium", recs.CurrentState.Energy)
	}
	if len(recs.RecommendedTasks) != 3 {
		t.Errorf("Expected top 3 recommended task types, got %d", len(recs.RecommendedTasks))
	}
	if recs.Recommendation == "" {
		t.Error("Recommendation message should never be empty")
	}
}

func TestCurrentRecommendations_StressedAndLow(t *testing.T) {
	now := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC) // evening
	e := newTestEngine(now)
	for i := 0; i < 3; i++ {
		e.RecordObservationAt(models.MoodStressed, models.EnergyLow,
			now.Add(-time.Duration(i+1)*time.Hour))
	}

	recs := e.CurrentRecommendations()
	if recs.CurrentState.Mood != models.MoodStressed {
		t.Errorf("Mood = %q, want stressed", recs.CurrentState.Mood)
	}
	if recs.CurrentState.Energy != models.EnergyLow {
		t.Errorf("Energy = %q, want low", recs.CurrentState.Energy)
	}
	if !strings.Contains(recs.Recommendation, "stressed with low energy") {
		t.Errorf("Unexpected recommendation: %q", recs.Recommendation)
	}
	// Relaxation matches stressed mood, low energy, and the evening slot.
	if recs.RecommendedTasks[0].Type != models.TypeRelaxation {
		t.Errorf("Top recommendation = %s, want RELAXATION", recs.RecommendedTasks[0].Type)
	}
}

func TestCurrentRecommendations_UsesThreeMostRecent(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	// Old excited entries must be displaced by the three recent tired ones.
	for i := 0; i < 5; i++ {
		e.RecordObservationAt(models.MoodExcited, models.EnergyHigh, now.Add(-time.Duration(i+10)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		e.RecordObservationAt(models.MoodTired, models.EnergyLow, now.Add(-time.Duration(i+1)*time.Hour))
	}

	recs := e.CurrentRecommendations()
	if recs.CurrentState.Mood != models.MoodTired {
		t.Errorf("Mood = %q, want tired (from the 3 most recent entries)", recs.CurrentState.Mood)
	}
	if recs.CurrentState.Energy != models.EnergyLow {
		t.Errorf("Energy = %q, want low", recs.CurrentState.Energy)
	}
}

func TestEngine_PersistedHistoryReproducesOptimalTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	first, err := store.NewFileHistoryStore(path, "json")
	if err != nil {
		t.Fatalf("NewFileHistoryStore failed: %v", err)
	}
	e1 := New(first, WithClock(fixedClock(now)))
	for day := 1; day <= 3; day++ {
		e1.RecordObservationAt(models.MoodExcited, models.EnergyHigh,
			time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC))
		e1.RecordObservationAt(models.MoodTired, models.EnergyLow,
			time.Date(2026, 3, day, 22, 0, 0, 0, time.UTC))
	}
	want := e1.ComputeOptimalTimes()
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := store.NewFileHistoryStore(path, "json")
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	e2 := New(second, WithClock(fixedClock(now)))
	got := e2.ComputeOptimalTimes()

	for _, info := range models.TaskTypes() {
		wantSlots, gotSlots := want[info.Key], got[info.Key]
		if len(wantSlots) != len(gotSlots) {
			t.Fatalf("%s: slot count mismatch after reload: got %d, want %d", info.Key, len(gotSlots), len(wantSlots))
		}
		for i := range wantSlots {
			if wantSlots[i] != gotSlots[i] {
				t.Errorf("%s slot %d mismatch after reload: got %+v, want %+v", info.Key, i, gotSlots[i], wantSlots[i])
			}
		}
	}
}

func TestRecordTaskCompletion_DefaultsUnknownType(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(now)

	entry := e.RecordTaskCompletion(models.Task{ID: "x", Title: "X", Type: "MYSTERY"}, PerformanceMetrics{})
	if entry.TaskType != models.TypeRoutine {
		t.Errorf("Unknown task type should default to ROUTINE, got %s", entry.TaskType)
	}
	if entry.TimeOfDay != models.Morning {
		t.Errorf("Completion at 10:00 should stamp morning, got %s", entry.TimeOfDay)
	}
	if entry.ScoreOrDefault() != 0.5 {
		t.Errorf("Missing score should read as 0.5, got %v", entry.ScoreOrDefault())
	}
}

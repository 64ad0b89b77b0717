package models

// TimeOfDay is a coarse bucket of the day derived from an hour.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayForHour maps an hour of day (0-23) to its bucket.
// Morning runs 5-11, afternoon 12-16, evening 17-21, night otherwise.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// TaskTypeKey identifies a category in the task type catalog.
type TaskTypeKey string

const (
	TypeCreative   TaskTypeKey = "CREATIVE"
	TypeAnalytical TaskTypeKey = "ANALYTICAL"
	TypeRoutine    TaskTypeKey = "ROUTINE"
	TypeLearning   TaskTypeKey = "LEARNING"
	TypePlanning   TaskTypeKey = "PLANNING"
	TypePhysical   TaskTypeKey = "PHYSICAL"
	TypeSocial     TaskTypeKey = "SOCIAL"
	TypeRelaxation TaskTypeKey = "RELAXATION"
)

// TaskTypeInfo describes the ideal working conditions for a task category.
type TaskTypeInfo struct {
	Name            string      `json:"name"`
	IdealMoods      []Mood      `json:"idealMoods"`
	IdealEnergy     Energy      `json:"idealEnergy"`
	IdealTimeOfDay  TimeOfDay   `json:"idealTimeOfDay"`
	DurationMinutes int         `json:"durationMinutes"`
	Key             TaskTypeKey `json:"key"`
}

// taskTypeCatalog is the fixed set of task categories. It is configuration,
// not runtime-mutable state.
var taskTypeCatalog = map[TaskTypeKey]TaskTypeInfo{
	TypeCreative: {
		Key:             TypeCreative,
		Name:            "Creative Work",
		IdealMoods:      []Mood{MoodExcited, MoodHappy},
		IdealEnergy:     EnergyHigh,
		IdealTimeOfDay:  Morning,
		DurationMinutes: 90,
	},
	TypeAnalytical: {
		Key:             TypeAnalytical,
		Name:            "Analytical Work",
		IdealMoods:      []Mood{MoodNeutral, MoodHappy},
		IdealEnergy:     EnergyHigh,
		IdealTimeOfDay:  Morning,
		DurationMinutes: 60,
	},
	TypeRoutine: {
		Key:             TypeRoutine,
		Name:            "Routine Tasks",
		IdealMoods:      []Mood{MoodNeutral, MoodTired},
		IdealEnergy:     EnergyMedium,
		IdealTimeOfDay:  Afternoon,
		DurationMinutes: 30,
	},
	TypeLearning: {
		Key:             TypeLearning,
		Name:            "Learning New Skills",
		IdealMoods:      []Mood{MoodExcited, MoodHappy},
		IdealEnergy:     EnergyMedium,
		IdealTimeOfDay:  Morning,
		DurationMinutes: 45,
	},
	TypePlanning: {
		Key:             TypePlanning,
		Name:            "Planning & Strategy",
		IdealMoods:      []Mood{MoodNeutral, MoodHappy},
		IdealEnergy:     EnergyMedium,
		IdealTimeOfDay:  Afternoon,
		DurationMinutes: 60,
	},
	TypePhysical: {
		Key:             TypePhysical,
		Name:            "Physical Activity",
		IdealMoods:      []Mood{MoodExcited, MoodHappy, MoodStressed},
		IdealEnergy:     EnergyHigh,
		IdealTimeOfDay:  Afternoon,
		DurationMinutes: 45,
	},
	TypeSocial: {
		Key:             TypeSocial,
		Name:            "Social & Communication",
		IdealMoods:      []Mood{MoodHappy, MoodExcited},
		IdealEnergy:     EnergyMedium,
		IdealTimeOfDay:  Afternoon,
		DurationMinutes: 60,
	},
	TypeRelaxation: {
		Key:             TypeRelaxation,
		Name:            "Relaxation & Self-care",
		IdealMoods:      []Mood{MoodTired, MoodStressed},
		IdealEnergy:     EnergyLow,
		IdealTimeOfDay:  Evening,
		DurationMinutes: 30,
	},
}

// taskTypeOrder fixes iteration order over the catalog so derived tables
// and rankings are deterministic across runs.
var taskTypeOrder = []TaskTypeKey{
	TypeCreative,
	TypeAnalytical,
	TypeRoutine,
	TypeLearning,
	TypePlanning,
	TypePhysical,
	TypeSocial,
	TypeRelaxation,
}

// TaskTypes returns the catalog entries in their canonical order.
func TaskTypes() []TaskTypeInfo {
	infos := make([]TaskTypeInfo, 0, len(taskTypeOrder))
	for _, key := range taskTypeOrder {
		infos = append(infos, taskTypeCatalog[key])
	}
	return infos
}

// TaskTypeByKey looks up a catalog entry. The second return is false for
// unknown keys.
func TaskTypeByKey(key TaskTypeKey) (TaskTypeInfo, bool) {
	info, ok := taskTypeCatalog[key]
	return info, ok
}

// ResolveTaskType returns the catalog entry for key, falling back to the
// ROUTINE category when the key is empty or unknown.
func ResolveTaskType(key TaskTypeKey) TaskTypeInfo {
	if info, ok := taskTypeCatalog[key]; ok {
		return info
	}
	return taskTypeCatalog[TypeRoutine]
}

// MatchesMood reports whether mood is one of the type's ideal moods.
func (t TaskTypeInfo) MatchesMood(mood Mood) bool {
	for _, m := range t.IdealMoods {
		if m == mood {
			return true
		}
	}
	return false
}

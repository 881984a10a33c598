package domain

// caloriesPerMinute is the fixed linear coefficient converting exercise
// duration to calories burned. Not user-configurable.
const caloriesPerMinute = 7

// CaloriesBurned converts an exercise duration in minutes to calories.
// This is the only derived quantity that gets persisted; everything below is
// recomputed on every load.
func CaloriesBurned(durationMinutes int) int {
	return durationMinutes * caloriesPerMinute
}

// TotalCaloriesBurned sums calories over the fetched set of exercise logs.
// It is not time-windowed; it reflects whatever set was fetched.
func TotalCaloriesBurned(logs []ExerciseLog) int {
	total := 0
	for _, l := range logs {
		total += l.CaloriesBurned
	}
	return total
}

// LatestWeight returns the weight of the newest log, or nil if none exist.
// Expects logs ordered newest-first, as the repositories return them.
func LatestWeight(logs []WeightLog) *float64 {
	if len(logs) == 0 {
		return nil
	}
	w := logs[0].WeightKg
	return &w
}

// WeightChange returns newest minus second-newest weight, or 0 when fewer
// than two logs exist. Positive means the weight increased. This is a
// single-step delta, not a trend.
func WeightChange(logs []WeightLog) float64 {
	if len(logs) < 2 {
		return 0
	}
	return logs[0].WeightKg - logs[1].WeightKg
}

// WeightDeltas computes the per-entry delta against the next-older log for
// history display. The slot for the oldest entry is nil since there is
// nothing to compare against.
func WeightDeltas(logs []WeightLog) []*float64 {
	deltas := make([]*float64, len(logs))
	for i := range logs {
		if i+1 < len(logs) {
			d := logs[i].WeightKg - logs[i+1].WeightKg
			deltas[i] = &d
		}
	}
	return deltas
}

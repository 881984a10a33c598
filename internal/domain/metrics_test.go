package domain

import "testing"

func TestCaloriesBurned(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{1, 7},
		{30, 210},
		{45, 315},
		{60, 420},
	}
	for _, c := range cases {
		if got := CaloriesBurned(c.minutes); got != c.want {
			t.Errorf("CaloriesBurned(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

func TestTotalCaloriesBurned(t *testing.T) {
	logs := []ExerciseLog{
		{DurationMinutes: 45, CaloriesBurned: CaloriesBurned(45)},
		{DurationMinutes: 30, CaloriesBurned: CaloriesBurned(30)},
	}
	if got := TotalCaloriesBurned(logs); got != 525 {
		t.Errorf("TotalCaloriesBurned = %d, want 525", got)
	}
	if got := TotalCaloriesBurned(nil); got != 0 {
		t.Errorf("TotalCaloriesBurned(empty) = %d, want 0", got)
	}
}

func TestLatestWeight(t *testing.T) {
	if got := LatestWeight(nil); got != nil {
		t.Errorf("LatestWeight(empty) = %v, want nil", *got)
	}
	logs := []WeightLog{{WeightKg: 80.0}, {WeightKg: 81.5}}
	got := LatestWeight(logs)
	if got == nil || *got != 80.0 {
		t.Errorf("LatestWeight = %v, want 80.0", got)
	}
}

func TestWeightChange(t *testing.T) {
	if got := WeightChange(nil); got != 0 {
		t.Errorf("WeightChange(empty) = %v, want 0", got)
	}
	if got := WeightChange([]WeightLog{{WeightKg: 80.0}}); got != 0 {
		t.Errorf("WeightChange(single) = %v, want 0", got)
	}
	// Newest-first: 80.0 was measured after 81.5, so the client lost weight.
	logs := []WeightLog{{WeightKg: 80.0}, {WeightKg: 81.5}, {WeightKg: 79.0}}
	if got := WeightChange(logs); got != -1.5 {
		t.Errorf("WeightChange = %v, want -1.5", got)
	}
}

func TestWeightDeltas(t *testing.T) {
	logs := []WeightLog{{WeightKg: 80.0}, {WeightKg: 81.5}, {WeightKg: 79.0}}
	deltas := WeightDeltas(logs)
	if len(deltas) != 3 {
		t.Fatalf("expected 3 deltas, got %d", len(deltas))
	}
	if deltas[0] == nil || *deltas[0] != -1.5 {
		t.Errorf("deltas[0] = %v, want -1.5", deltas[0])
	}
	if deltas[1] == nil || *deltas[1] != 2.5 {
		t.Errorf("deltas[1] = %v, want 2.5", deltas[1])
	}
	if deltas[2] != nil {
		t.Errorf("deltas[2] = %v, want nil for the oldest entry", *deltas[2])
	}
}

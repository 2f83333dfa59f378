package main

import "testing"

func TestTodayHonorsExplicitOverride(t *testing.T) {
	t.Cleanup(func() {
		daySet = false
		dayOverride = 0
	})

	daySet = true
	for _, day := range []int{0, -5, 100} {
		dayOverride = day
		if got := today(); got != day {
			t.Fatalf("override %d: got %d", day, got)
		}
	}

	// Without an explicit override the clock-derived day is used.
	daySet = false
	dayOverride = 0
	if got := today(); got <= 0 {
		t.Fatalf("clock-derived day should be positive, got %d", got)
	}
}

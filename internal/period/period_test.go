package period

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_Selectors(t *testing.T) {
	tests := []struct {
		name      string
		sel       Selector
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"current cycle", CurrentCycle, date(2025, 7, 1), date(2025, 7, 15)},
		{"previous cycle", PreviousCycle, date(2025, 6, 1), date(2025, 6, 30)},
		{"trailing 3", Trailing3, date(2025, 4, 16), date(2025, 7, 15)},
		{"trailing 6", Trailing6, date(2025, 1, 16), date(2025, 7, 15)},
		{"year to date", YearToDate, date(2025, 1, 1), date(2025, 7, 15)},
		{"unknown falls back to current", Selector("bogus"), date(2025, 7, 1), date(2025, 7, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := Resolve(tt.sel, nil, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !rng.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", rng.Start, tt.wantStart)
			}
			if !rng.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", rng.End, tt.wantEnd)
			}
			if rng.Days() < 1 {
				t.Errorf("Days() = %d, want >= 1", rng.Days())
			}
			if rng.Start.After(rng.End) {
				t.Error("Start after End")
			}
		})
	}
}

func TestResolve_PreviousCycleAcrossYear(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rng, err := Resolve(PreviousCycle, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rng.Start.Equal(date(2024, 12, 1)) || !rng.End.Equal(date(2024, 12, 31)) {
		t.Errorf("got %v, want Dec 2024", rng)
	}
}

func TestResolve_Custom(t *testing.T) {
	custom := &Range{Start: date(2025, 3, 1), End: date(2025, 3, 10)}
	rng, err := Resolve(Custom, custom, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rng.Days() != 10 {
		t.Errorf("Days() = %d, want 10", rng.Days())
	}
}

func TestResolve_CustomSingleDay(t *testing.T) {
	d := date(2025, 3, 1)
	rng, err := Resolve(Custom, &Range{Start: d, End: d}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rng.Days() != 1 {
		t.Errorf("Days() = %d, want 1", rng.Days())
	}
}

func TestResolve_CustomInvalid(t *testing.T) {
	tests := []struct {
		name   string
		custom *Range
	}{
		{"nil range", nil},
		{"zero start", &Range{End: date(2025, 3, 10)}},
		{"zero end", &Range{Start: date(2025, 3, 1)}},
		{"inverted", &Range{Start: date(2025, 3, 10), End: date(2025, 3, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(Custom, tt.custom, testNow)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestPrevious(t *testing.T) {
	cur, err := Resolve(CurrentCycle, nil, testNow)
	if err != nil {
		t.Fatal(err)
	}
	prev, ok := Previous(CurrentCycle, cur)
	if !ok {
		t.Fatal("expected a previous period for current cycle")
	}
	if !prev.Start.Equal(date(2025, 6, 1)) || !prev.End.Equal(date(2025, 6, 30)) {
		t.Errorf("got %v, want June 2025", prev)
	}
}

func TestPrevious_Trailing(t *testing.T) {
	cur := Range{Start: date(2025, 4, 16), End: date(2025, 7, 15)}
	prev, ok := Previous(Trailing3, cur)
	if !ok {
		t.Fatal("expected a previous period for trailing-3")
	}
	if !prev.End.Equal(date(2025, 4, 15)) {
		t.Errorf("End = %v, want 2025-04-15", prev.End)
	}
	if !prev.Start.Equal(date(2025, 1, 16)) {
		t.Errorf("Start = %v, want 2025-01-16", prev.Start)
	}
}

func TestPrevious_Undefined(t *testing.T) {
	cur := Range{Start: date(2025, 1, 1), End: date(2025, 7, 15)}
	for _, sel := range []Selector{YearToDate, Custom} {
		if _, ok := Previous(sel, cur); ok {
			t.Errorf("Previous(%s) = ok, want undefined", sel)
		}
	}
}

func TestGranularityFor(t *testing.T) {
	tests := []struct {
		sel  Selector
		want Granularity
	}{
		{CurrentCycle, Daily},
		{PreviousCycle, Daily},
		{Trailing3, Weekly},
		{Trailing6, Weekly},
		{YearToDate, Monthly},
		{Custom, Monthly},
	}
	for _, tt := range tests {
		if got := GranularityFor(tt.sel); got != tt.want {
			t.Errorf("GranularityFor(%s) = %s, want %s", tt.sel, got, tt.want)
		}
	}
}

package analysis

import (
	"errors"
	"testing"
	"time"

	"wattwise/internal/model"
)

// stubLookup returns a fixed benchmark record, or misses/fails on demand.
type stubLookup struct {
	record model.BenchmarkRecord
	found  bool
	err    error

	gotSize  int
	gotRange string
	gotSeason model.Season
}

func (s *stubLookup) LookupBenchmark(size int, areaRange string, season model.Season) (model.BenchmarkRecord, bool, error) {
	s.gotSize, s.gotRange, s.gotSeason = size, areaRange, season
	return s.record, s.found, s.err
}

func TestCompareBenchmark_TrailingWindow(t *testing.T) {
	target := day(2025, 7, 31)
	profile := model.HouseholdProfile{ID: "h1", Size: 3, FloorArea: 110, HasFloorArea: true}

	// 31 daily readings of 10 covering July exactly fill the inclusive
	// [target-30d, target] window.
	readings := dailyReadings(t, "h1", day(2025, 7, 1), 31, 10)
	lookup := &stubLookup{
		record: model.BenchmarkRecord{AverageConsumption: 250},
		found:  true,
	}

	cmp := CompareBenchmark(readings, profile, target, lookup)
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if cmp.UserConsumption != 310 {
		t.Errorf("UserConsumption = %v, want 310", cmp.UserConsumption)
	}
	if cmp.DifferencePercent != 24 {
		t.Errorf("DifferencePercent = %v, want 24", cmp.DifferencePercent)
	}
	if cmp.Season != model.Summer {
		t.Errorf("Season = %s, want summer", cmp.Season)
	}
	if lookup.gotSize != 3 || lookup.gotRange != "90-120" {
		t.Errorf("lookup cohort = (%d, %q)", lookup.gotSize, lookup.gotRange)
	}
}

func TestCompareBenchmark_NoRecord(t *testing.T) {
	lookup := &stubLookup{found: false}
	cmp := CompareBenchmark(nil, model.HouseholdProfile{Size: 2}, day(2025, 7, 1), lookup)
	if cmp != nil {
		t.Errorf("expected nil without a benchmark record, got %+v", cmp)
	}
}

func TestCompareBenchmark_LookupError(t *testing.T) {
	lookup := &stubLookup{found: true, err: errors.New("db closed")}
	cmp := CompareBenchmark(nil, model.HouseholdProfile{Size: 2}, day(2025, 7, 1), lookup)
	if cmp != nil {
		t.Errorf("expected nil on lookup failure, got %+v", cmp)
	}
}

func TestCompareBenchmark_ZeroBenchmark(t *testing.T) {
	readings := dailyReadings(t, "h1", day(2025, 7, 1), 10, 10)
	lookup := &stubLookup{record: model.BenchmarkRecord{AverageConsumption: 0}, found: true}

	cmp := CompareBenchmark(readings, model.HouseholdProfile{Size: 2}, day(2025, 7, 10), lookup)
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if cmp.DifferencePercent != 0 {
		t.Errorf("DifferencePercent = %v, want 0 for zero benchmark", cmp.DifferencePercent)
	}
}

func TestCompareBenchmark_MissingFloorAreaDefaults(t *testing.T) {
	lookup := &stubLookup{found: false}
	profile := model.HouseholdProfile{Size: 2}

	CompareBenchmark(nil, profile, day(2025, 7, 1), lookup)
	if lookup.gotRange != "60-90" {
		t.Errorf("area range = %q, want 60-90 (default 90 m²)", lookup.gotRange)
	}
}

func TestFloorAreaRange(t *testing.T) {
	tests := []struct {
		area float64
		want string
	}{
		{45, "0-60"},
		{60, "0-60"},
		{61, "60-90"},
		{90, "60-90"},
		{110, "90-120"},
		{120, "90-120"},
		{121, "120+"},
	}
	for _, tt := range tests {
		if got := FloorAreaRange(tt.area); got != tt.want {
			t.Errorf("FloorAreaRange(%v) = %q, want %q", tt.area, got, tt.want)
		}
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  model.Season
	}{
		{time.March, model.Spring},
		{time.May, model.Spring},
		{time.June, model.Summer},
		{time.August, model.Summer},
		{time.September, model.Autumn},
		{time.November, model.Autumn},
		{time.December, model.Winter},
		{time.February, model.Winter},
	}
	for _, tt := range tests {
		if got := model.SeasonOf(day(2025, tt.month, 15)); got != tt.want {
			t.Errorf("SeasonOf(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

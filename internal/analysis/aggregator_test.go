package analysis

import (
	"reflect"
	"testing"
	"time"

	"wattwise/internal/model"
	"wattwise/internal/period"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dailyReadings builds n consecutive total-kind readings of the given value
// starting at start.
func dailyReadings(t *testing.T, householdID string, start time.Time, n int, value float64) []model.Reading {
	t.Helper()
	readings := make([]model.Reading, 0, n)
	for i := 0; i < n; i++ {
		readings = append(readings, model.Reading{
			HouseholdID: householdID,
			Kind:        model.ReadingTotal,
			Value:       value,
			Date:        start.AddDate(0, 0, i),
			Cost:        value * 0.5,
			HasCost:     true,
		})
	}
	return readings
}

func TestSummarize_Totals(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 10)}
	readings := dailyReadings(t, "h1", rng.Start, 10, 12)

	sum := Summarize(readings, nil, rng, period.CurrentCycle)

	if sum.TotalConsumption != 120 {
		t.Errorf("TotalConsumption = %v, want 120", sum.TotalConsumption)
	}
	if sum.AverageDaily != 12 {
		t.Errorf("AverageDaily = %v, want 12", sum.AverageDaily)
	}
	if sum.CostTotal != 60 {
		t.Errorf("CostTotal = %v, want 60", sum.CostTotal)
	}
	if sum.PeriodDays != 10 {
		t.Errorf("PeriodDays = %d, want 10", sum.PeriodDays)
	}
}

func TestSummarize_DailyBucketKeys(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 10)}
	readings := dailyReadings(t, "h1", rng.Start, 10, 5)

	sum := Summarize(readings, nil, rng, period.CurrentCycle)

	if len(sum.Trend) != 10 {
		t.Fatalf("len(Trend) = %d, want 10", len(sum.Trend))
	}
	if sum.Trend[0].Period != "07-01" {
		t.Errorf("first key = %q, want 07-01", sum.Trend[0].Period)
	}
	if sum.Trend[9].Period != "07-10" {
		t.Errorf("last key = %q, want 07-10", sum.Trend[9].Period)
	}
}

func TestSummarize_SparseTrend(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}
	readings := []model.Reading{
		{HouseholdID: "h1", Kind: model.ReadingTotal, Value: 10, Date: day(2025, 7, 3)},
		{HouseholdID: "h1", Kind: model.ReadingTotal, Value: 20, Date: day(2025, 7, 20)},
	}

	sum := Summarize(readings, nil, rng, period.CurrentCycle)

	// Days without readings produce no bucket at all.
	if len(sum.Trend) != 2 {
		t.Fatalf("len(Trend) = %d, want 2", len(sum.Trend))
	}
	if sum.Trend[0].Period != "07-03" || sum.Trend[1].Period != "07-20" {
		t.Errorf("keys = %q, %q", sum.Trend[0].Period, sum.Trend[1].Period)
	}
}

func TestSummarize_WeeklyBuckets(t *testing.T) {
	// Four weeks of Mondays inside a trailing window.
	rng := period.Range{Start: day(2025, 6, 1), End: day(2025, 7, 15)}
	readings := []model.Reading{
		{Kind: model.ReadingTotal, Value: 1, Date: day(2025, 6, 2)},
		{Kind: model.ReadingTotal, Value: 1, Date: day(2025, 6, 9)},
		{Kind: model.ReadingTotal, Value: 1, Date: day(2025, 6, 16)},
		{Kind: model.ReadingTotal, Value: 1, Date: day(2025, 6, 23)},
	}

	sum := Summarize(readings, nil, rng, period.Trailing3)

	want := []string{"2025-W23", "2025-W24", "2025-W25", "2025-W26"}
	if len(sum.Trend) != len(want) {
		t.Fatalf("len(Trend) = %d, want %d", len(sum.Trend), len(want))
	}
	for i, p := range sum.Trend {
		if p.Period != want[i] {
			t.Errorf("Trend[%d] = %q, want %q", i, p.Period, want[i])
		}
	}
}

func TestSummarize_IgnoresOutOfRangeAndDeviceKind(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 10)}
	readings := []model.Reading{
		{Kind: model.ReadingTotal, Value: 10, Date: day(2025, 7, 5)},
		{Kind: model.ReadingTotal, Value: 99, Date: day(2025, 6, 30)},
		{Kind: model.ReadingTotal, Value: 99, Date: day(2025, 7, 11)},
		{Kind: model.ReadingDevice, DeviceID: "d1", Value: 99, Date: day(2025, 7, 5)},
	}

	sum := Summarize(readings, nil, rng, period.CurrentCycle)
	if sum.TotalConsumption != 10 {
		t.Errorf("TotalConsumption = %v, want 10", sum.TotalConsumption)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}
	devices := []model.Device{
		{ID: "d1", Name: "Fridge", Category: model.CategoryRefrigeration},
		{ID: "d2", Name: "AC", Category: model.CategoryClimateControl},
	}
	readings := dailyReadings(t, "h1", rng.Start, 20, 7)
	for i := 0; i < 20; i++ {
		readings = append(readings,
			model.Reading{Kind: model.ReadingDevice, DeviceID: "d2", Value: 3, Date: rng.Start.AddDate(0, 0, i)},
			model.Reading{Kind: model.ReadingDevice, DeviceID: "d1", Value: 1, Date: rng.Start.AddDate(0, 0, i)},
		)
	}

	a := Summarize(readings, devices, rng, period.CurrentCycle)
	b := Summarize(readings, devices, rng, period.CurrentCycle)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different summaries")
	}
}

func TestDeviceBreakdown(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}
	devices := []model.Device{
		{ID: "d1", Name: "Fridge", Category: model.CategoryRefrigeration},
		{ID: "d2", Name: "AC", Category: model.CategoryClimateControl},
	}
	readings := []model.Reading{
		{Kind: model.ReadingDevice, DeviceID: "d2", Value: 30, Date: day(2025, 7, 2)},
		{Kind: model.ReadingDevice, DeviceID: "d1", Value: 5, Date: day(2025, 7, 2)},
		{Kind: model.ReadingDevice, DeviceID: "d1", Value: 5, Date: day(2025, 7, 3)},
		{Kind: model.ReadingDevice, DeviceID: "ghost", Value: 99, Date: day(2025, 7, 2)},
	}

	breakdown := DeviceBreakdown(readings, devices, rng)

	if len(breakdown) != 2 {
		t.Fatalf("len = %d, want 2 (unknown device skipped)", len(breakdown))
	}
	// Sorted by device ID.
	if breakdown[0].DeviceID != "d1" || breakdown[0].Consumption != 10 {
		t.Errorf("breakdown[0] = %+v", breakdown[0])
	}
	if breakdown[1].DeviceID != "d2" || breakdown[1].Consumption != 30 {
		t.Errorf("breakdown[1] = %+v", breakdown[1])
	}
}

func TestSummarize_ZeroDayGuard(t *testing.T) {
	rng := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 1)}
	sum := Summarize(nil, nil, rng, period.CurrentCycle)
	if sum.AverageDaily != 0 {
		t.Errorf("AverageDaily = %v, want 0 for no readings", sum.AverageDaily)
	}
}

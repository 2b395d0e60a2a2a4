package analysis

import (
	"testing"

	"wattwise/internal/model"
	"wattwise/internal/period"
)

func TestComparePeriods_MonthOverMonth(t *testing.T) {
	// July at 12/day vs June at 10/day.
	cur := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}
	readings := dailyReadings(t, "h1", day(2025, 6, 1), 30, 10)
	readings = append(readings, dailyReadings(t, "h1", day(2025, 7, 1), 31, 12)...)

	cmp := ComparePeriods(readings, period.CurrentCycle, cur)
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if cmp.CurrentDailyRate != 12 {
		t.Errorf("CurrentDailyRate = %v, want 12", cmp.CurrentDailyRate)
	}
	if cmp.PreviousDailyRate != 10 {
		t.Errorf("PreviousDailyRate = %v, want 10", cmp.PreviousDailyRate)
	}
	if cmp.ChangePercent != 20 {
		t.Errorf("ChangePercent = %v, want 20", cmp.ChangePercent)
	}
	if cmp.Direction != "increase" {
		t.Errorf("Direction = %q, want increase", cmp.Direction)
	}
	if cmp.PreviousStart != "2025-06-01" || cmp.PreviousEnd != "2025-06-30" {
		t.Errorf("previous window = %s..%s", cmp.PreviousStart, cmp.PreviousEnd)
	}
}

func TestComparePeriods_Decrease(t *testing.T) {
	cur := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}
	readings := dailyReadings(t, "h1", day(2025, 6, 1), 30, 10)
	readings = append(readings, dailyReadings(t, "h1", day(2025, 7, 1), 31, 5)...)

	cmp := ComparePeriods(readings, period.CurrentCycle, cur)
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if cmp.Direction != "decrease" {
		t.Errorf("Direction = %q, want decrease", cmp.Direction)
	}
	if cmp.ChangePercent != -50 {
		t.Errorf("ChangePercent = %v, want -50", cmp.ChangePercent)
	}
}

func TestComparePeriods_ZeroSaturation(t *testing.T) {
	cur := period.Range{Start: day(2025, 7, 1), End: day(2025, 7, 31)}

	t.Run("both zero", func(t *testing.T) {
		cmp := ComparePeriods(nil, period.CurrentCycle, cur)
		if cmp == nil {
			t.Fatal("expected a comparison")
		}
		if cmp.ChangePercent != 0 {
			t.Errorf("ChangePercent = %v, want 0", cmp.ChangePercent)
		}
		if cmp.Direction != "increase" {
			t.Errorf("Direction = %q, want increase on zero change", cmp.Direction)
		}
	})

	t.Run("previous zero, current nonzero", func(t *testing.T) {
		readings := dailyReadings(t, "h1", day(2025, 7, 1), 31, 8)
		cmp := ComparePeriods(readings, period.CurrentCycle, cur)
		if cmp == nil {
			t.Fatal("expected a comparison")
		}
		if cmp.ChangePercent != 100 {
			t.Errorf("ChangePercent = %v, want 100 (saturated)", cmp.ChangePercent)
		}
	})
}

func TestComparePeriods_NoPredecessor(t *testing.T) {
	cur := period.Range{Start: day(2025, 1, 1), End: day(2025, 7, 15)}
	var readings []model.Reading

	if cmp := ComparePeriods(readings, period.YearToDate, cur); cmp != nil {
		t.Errorf("expected nil for year-to-date, got %+v", cmp)
	}
	if cmp := ComparePeriods(readings, period.Custom, cur); cmp != nil {
		t.Errorf("expected nil for custom, got %+v", cmp)
	}
}

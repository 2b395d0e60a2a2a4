package analysis

import (
	"wattwise/internal/model"
	"wattwise/internal/period"
)

// ComparePeriods reports the current range's day-normalized consumption
// against the immediately preceding comparable period. Returns nil for
// selectors with no defined predecessor (year-to-date, custom).
//
// The zero guard is an intentional saturation rule: a previous rate of 0
// yields a 0% change when the current rate is also 0, else 100%.
func ComparePeriods(readings []model.Reading, sel period.Selector, cur period.Range) *model.PeriodComparison {
	prev, ok := period.Previous(sel, cur)
	if !ok {
		return nil
	}

	curRate := dailyRate(TotalInRange(readings, cur), cur.Days())
	prevRate := dailyRate(TotalInRange(readings, prev), prev.Days())

	var change float64
	switch {
	case prevRate != 0:
		change = (curRate - prevRate) / prevRate * 100
	case curRate != 0:
		change = 100
	}

	direction := "increase"
	if change < 0 {
		direction = "decrease"
	}

	return &model.PeriodComparison{
		CurrentDailyRate:  curRate,
		PreviousDailyRate: prevRate,
		ChangePercent:     change,
		Direction:         direction,
		PreviousStart:     prev.Start.Format("2006-01-02"),
		PreviousEnd:       prev.End.Format("2006-01-02"),
	}
}

func dailyRate(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return total / float64(days)
}

package analysis

import (
	"time"

	"wattwise/internal/model"
	"wattwise/internal/period"
)

// defaultFloorArea is assumed for bucketing when a profile has no floor area.
const defaultFloorArea = 90

// BenchmarkLookup gives read access to benchmark reference records.
type BenchmarkLookup interface {
	LookupBenchmark(size int, areaRange string, season model.Season) (model.BenchmarkRecord, bool, error)
}

// FloorAreaRange buckets a floor area by fixed breakpoints.
func FloorAreaRange(area float64) string {
	switch {
	case area <= 60:
		return "0-60"
	case area <= 90:
		return "60-90"
	case area <= 120:
		return "90-120"
	default:
		return "120+"
	}
}

// CompareBenchmark compares the household's trailing-30-day consumption
// ending at target against its cohort benchmark. Returns nil when no exact
// cohort record exists or the lookup fails; a zero benchmark reports a zero
// delta rather than dividing.
func CompareBenchmark(readings []model.Reading, profile model.HouseholdProfile, target time.Time, lookup BenchmarkLookup) *model.BenchmarkComparison {
	end := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	window := period.Range{Start: end.AddDate(0, 0, -30), End: end}
	trailing := TotalInRange(readings, window)

	season := model.SeasonOf(end)
	area := profile.FloorArea
	if !profile.HasFloorArea {
		area = defaultFloorArea
	}
	areaRange := FloorAreaRange(area)

	record, ok, err := lookup.LookupBenchmark(profile.Size, areaRange, season)
	if err != nil || !ok {
		return nil
	}

	cmp := &model.BenchmarkComparison{
		UserConsumption:      trailing,
		BenchmarkConsumption: record.AverageConsumption,
		Season:               season,
		HouseholdSize:        profile.Size,
		FloorAreaRange:       areaRange,
	}
	if record.AverageConsumption != 0 {
		cmp.DifferencePercent = (trailing - record.AverageConsumption) / record.AverageConsumption * 100
	}
	return cmp
}

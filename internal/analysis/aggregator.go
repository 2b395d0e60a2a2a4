// Package analysis turns raw readings into summaries, trend series, and
// benchmark/period comparisons.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"wattwise/internal/model"
	"wattwise/internal/period"
)

// trendBucket accumulates one trend slot before conversion to a TrendPoint.
type trendBucket struct {
	consumption float64
	cost        float64
}

// Summarize computes an AnalysisSummary over the given readings for one
// household. Readings outside the range or belonging to other kinds are
// ignored per rule; the trend series is sparse (buckets without readings
// are omitted) and sorted ascending by period key.
func Summarize(readings []model.Reading, devices []model.Device, rng period.Range, sel period.Selector) model.AnalysisSummary {
	summary := model.AnalysisSummary{
		PeriodLabel: period.Label(sel),
		PeriodDays:  rng.Days(),
		StartDate:   rng.Start,
		EndDate:     rng.End,
	}

	gran := period.GranularityFor(sel)
	buckets := make(map[string]*trendBucket)

	for _, r := range readings {
		if r.Kind != model.ReadingTotal || !inRange(r.Date, rng) {
			continue
		}
		summary.TotalConsumption += r.Value
		if r.HasCost {
			summary.CostTotal += r.Cost
		}

		key := bucketKey(gran, r.Date)
		b, ok := buckets[key]
		if !ok {
			b = &trendBucket{}
			buckets[key] = b
		}
		b.consumption += r.Value
		if r.HasCost {
			b.cost += r.Cost
		}
	}

	if summary.PeriodDays > 0 {
		summary.AverageDaily = summary.TotalConsumption / float64(summary.PeriodDays)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		summary.Trend = append(summary.Trend, model.TrendPoint{
			Period:      k,
			Consumption: buckets[k].consumption,
			Cost:        buckets[k].cost,
		})
	}

	summary.DeviceBreakdown = DeviceBreakdown(readings, devices, rng)

	return summary
}

// DeviceBreakdown groups device-kind readings in range by device, summing
// consumption. Readings without a matching inventory device are skipped.
// Output order is stable, ascending by device ID.
func DeviceBreakdown(readings []model.Reading, devices []model.Device, rng period.Range) []model.DeviceUsage {
	byID := make(map[string]model.Device, len(devices))
	for _, d := range devices {
		byID[d.ID] = d
	}

	totals := make(map[string]float64)
	for _, r := range readings {
		if r.Kind != model.ReadingDevice || r.DeviceID == "" || !inRange(r.Date, rng) {
			continue
		}
		if _, ok := byID[r.DeviceID]; !ok {
			continue
		}
		totals[r.DeviceID] += r.Value
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	breakdown := make([]model.DeviceUsage, 0, len(ids))
	for _, id := range ids {
		dev := byID[id]
		breakdown = append(breakdown, model.DeviceUsage{
			DeviceID:    id,
			DeviceName:  dev.Name,
			Category:    dev.Category,
			Consumption: totals[id],
		})
	}
	return breakdown
}

// TotalInRange sums total-kind consumption over an inclusive date range.
func TotalInRange(readings []model.Reading, rng period.Range) float64 {
	var total float64
	for _, r := range readings {
		if r.Kind == model.ReadingTotal && inRange(r.Date, rng) {
			total += r.Value
		}
	}
	return total
}

func inRange(t time.Time, rng period.Range) bool {
	return !t.Before(rng.Start) && !t.After(rng.End)
}

// bucketKey formats a date into its trend bucket key for the granularity.
// Weekly keys use ISO-week semantics.
func bucketKey(gran period.Granularity, t time.Time) string {
	switch gran {
	case period.Daily:
		return t.Format("01-02")
	case period.Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

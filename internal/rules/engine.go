// Package rules is the deterministic recommendation engine: a pure decision
// table over aggregated consumption, device inventory, and the household
// profile. It never fails on missing data; absent fields count as zero.
package rules

import (
	"fmt"

	"wattwise/internal/config"
	"wattwise/internal/model"
)

// Engine generates rule-origin recommendations using tunable thresholds.
type Engine struct {
	cfg config.RulesConfig
}

// NewEngine creates a rule engine with the given thresholds.
func NewEngine(cfg config.RulesConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Generate produces the ordered recommendation list for one analysis run.
// The two universal recommendations are always appended, so the result is
// never empty.
func (e *Engine) Generate(summary model.AnalysisSummary, devices []model.Device, profile model.HouseholdProfile) []model.Recommendation {
	var recs []model.Recommendation

	if summary.BenchmarkDelta > e.cfg.BenchmarkDeltaPercent {
		recs = append(recs, e.stamp(summary, model.Recommendation{
			Title: "High consumption alert",
			Description: fmt.Sprintf(
				"Your household used %.1f%% more energy than similar households. Review how your high-power appliances are used and consider adjusting usage habits.",
				summary.BenchmarkDelta),
			Category:          model.RecLifestyle,
			EstimatedSaving:   50,
			EstimatedCostSave: 25,
			Difficulty:        model.DifficultyMedium,
		}))
	}

	recs = append(recs, e.deviceRecommendations(summary, devices)...)
	recs = append(recs, e.lifestyleRecommendations(summary, profile)...)
	recs = append(recs, e.universalRecommendations(summary)...)

	return recs
}

// deviceRecommendations emits one category-specific recommendation per
// device whose aggregated consumption exceeds the device threshold.
// Matching is by device name against the breakdown, as the original system
// did; fragile under duplicate names but preserved.
func (e *Engine) deviceRecommendations(summary model.AnalysisSummary, devices []model.Device) []model.Recommendation {
	var recs []model.Recommendation

	for _, dev := range devices {
		var consumption float64
		for _, usage := range summary.DeviceBreakdown {
			if usage.DeviceName == dev.Name {
				consumption += usage.Consumption
			}
		}
		if consumption <= e.cfg.DeviceThreshold {
			continue
		}

		saving := consumption * e.cfg.SavingPercentFor(dev.Category)
		recs = append(recs, e.stamp(summary, model.Recommendation{
			Title:             fmt.Sprintf("Optimize %s usage", dev.Name),
			Description:       deviceGuidance(dev, consumption),
			Category:          model.RecDeviceUsage,
			EstimatedSaving:   saving,
			EstimatedCostSave: saving * e.cfg.PricePerUnit,
			Difficulty:        model.DifficultyLow,
			DeviceID:          dev.ID,
		}))
	}

	return recs
}

func (e *Engine) lifestyleRecommendations(summary model.AnalysisSummary, profile model.HouseholdProfile) []model.Recommendation {
	var recs []model.Recommendation

	if profile.Size >= 3 {
		recs = append(recs, e.stamp(summary, model.Recommendation{
			Title:             "Coordinate peak usage",
			Description:       "With several household members, stagger use of high-power appliances to avoid running them simultaneously during peak hours.",
			Category:          model.RecLifestyle,
			EstimatedSaving:   30,
			EstimatedCostSave: 15,
			Difficulty:        model.DifficultyMedium,
		}))
	}

	if profile.HasFloorArea && profile.FloorArea > 100 {
		recs = append(recs, e.stamp(summary, model.Recommendation{
			Title:             "Zone-based usage",
			Description:       "In a large home, heat, cool, and light by zone: switch off climate control and lighting in rooms that are not in use.",
			Category:          model.RecLifestyle,
			EstimatedSaving:   40,
			EstimatedCostSave: 20,
			Difficulty:        model.DifficultyMedium,
		}))
	}

	return recs
}

// universalRecommendations are appended regardless of data so the engine
// always returns something actionable.
func (e *Engine) universalRecommendations(summary model.AnalysisSummary) []model.Recommendation {
	return []model.Recommendation{
		e.stamp(summary, model.Recommendation{
			Title:             "Switch to LED lighting",
			Description:       "Replacing incandescent bulbs with LED lighting cuts lighting energy use by roughly 80%.",
			Category:          model.RecDeviceUpgrade,
			EstimatedSaving:   15,
			EstimatedCostSave: 7.5,
			Difficulty:        model.DifficultyLow,
		}),
		e.stamp(summary, model.Recommendation{
			Title:             "Manage standby power",
			Description:       "Fully power off appliances when not in use to avoid standby drain. Smart plugs can automate this.",
			Category:          model.RecDeviceUsage,
			EstimatedSaving:   10,
			EstimatedCostSave: 5,
			Difficulty:        model.DifficultyLow,
		}),
	}
}

// stamp fills the provenance and analysis-period fields shared by every
// rule-engine recommendation.
func (e *Engine) stamp(summary model.AnalysisSummary, rec model.Recommendation) model.Recommendation {
	rec.Origin = model.OriginRule
	rec.PeriodLabel = summary.PeriodLabel
	rec.PeriodStart = summary.StartDate
	rec.PeriodEnd = summary.EndDate
	return rec
}

// deviceGuidance returns category-specific usage advice for a device that
// exceeded the consumption threshold.
func deviceGuidance(dev model.Device, consumption float64) string {
	prefix := fmt.Sprintf("Your %s used %.1f kWh this period. ", dev.Name, consumption)

	switch dev.Category {
	case model.CategoryClimateControl:
		return prefix + "Set the thermostat a couple of degrees closer to the outdoor temperature, clean the filters regularly, and switch it off when leaving home."
	case model.CategoryWaterHeating:
		return prefix + "Keep the water temperature between 45 and 50 degrees, switch the heater on an hour before use, and off promptly afterwards."
	case model.CategoryRefrigeration:
		return prefix + "Keep the fridge at 4-5 degrees and the freezer at -18, limit door openings, clean the condenser coils, and avoid overfilling."
	case model.CategoryEntertainment:
		return prefix + "Lower screen brightness to 50-70%, keep volume moderate, and power off completely after viewing."
	case model.CategoryLaundry:
		return prefix + "Run full loads, prefer cold-water cycles, pick the eco program, and clean the filter regularly."
	case model.CategoryLighting:
		return prefix + "Swap remaining bulbs for LEDs, add dimmers or occupancy-based switching, favor daylight, and keep fixtures clean."
	case model.CategoryComputing:
		return prefix + "Enable sleep after a few idle minutes, shut down instead of leaving it on standby, and lower screen brightness."
	default:
		return prefix + "Review how often this device runs and whether lower-power settings or shorter duty cycles would serve."
	}
}

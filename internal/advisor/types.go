package advisor

import (
	"encoding/json"
	"strconv"
	"strings"

	"wattwise/internal/model"
)

// HouseholdData is the household side of the advisory payload.
type HouseholdData struct {
	Name        string  `json:"name"`
	FamilySize  int     `json:"family_size"`
	FloorArea   float64 `json:"floor_area"`
	Season      string  `json:"season"`
	PeriodLabel string  `json:"analysis_period"`
	PeriodDays  int     `json:"period_days"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// EnergyData is the consumption side of the advisory payload.
type EnergyData struct {
	TotalConsumption float64                  `json:"total_consumption"`
	AverageDaily     float64                  `json:"average_daily_consumption"`
	CostTotal        float64                  `json:"cost_analysis"`
	BenchmarkDelta   float64                  `json:"comparison_with_benchmark"`
	DeviceBreakdown  []model.DeviceUsage      `json:"device_breakdown"`
	Trend            []model.TrendPoint       `json:"trend"`
	Comparison       *model.PeriodComparison  `json:"period_comparison,omitempty"`
}

// Insight is the structured analysis returned by the backend's first phase.
// Free-form fields are kept as raw JSON since backends vary in shape.
type Insight struct {
	OverallAssessment      string          `json:"overall_assessment"`
	KeyInsights            []string        `json:"key_insights"`
	EfficiencyLevel        string          `json:"efficiency_level"`
	MainConsumptionSources json.RawMessage `json:"main_consumption_sources,omitempty"`
	SeasonalImpact         string          `json:"seasonal_impact"`
}

// RawItem is one advisory recommendation before mapping into the domain
// shape. Numeric fields are raw JSON: backends have been seen returning
// numbers, quoted numbers, and nothing at all.
type RawItem struct {
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	Difficulty          string          `json:"implementation_difficulty"`
	EstimatedSaving     json.RawMessage `json:"estimated_saving"`
	EstimatedCostSaving json.RawMessage `json:"estimated_cost_saving"`
	Reasoning           string          `json:"reasoning"`
}

// Saving returns the parsed estimated saving, 0 when absent or unparseable.
func (r RawItem) Saving() float64 { return parseNumber(r.EstimatedSaving) }

// CostSaving returns the parsed estimated cost saving, 0 when absent or
// unparseable.
func (r RawItem) CostSaving() float64 { return parseNumber(r.EstimatedCostSaving) }

// parseNumber defensively parses a polymorphic numeric field: JSON number,
// quoted number, or missing.
func parseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}

	return 0
}

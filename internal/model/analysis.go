package model

import "time"

// TrendPoint is one bucket in a trend series. Key format depends on the
// bucket granularity: "MM-DD" daily, "YYYY-Www" weekly, "YYYY-MM" monthly.
type TrendPoint struct {
	Period      string
	Consumption float64
	Cost        float64
}

// DeviceUsage is one entry in a device breakdown.
type DeviceUsage struct {
	DeviceID    string
	DeviceName  string
	Category    DeviceCategory
	Consumption float64
}

// BenchmarkComparison reports a household against its cohort benchmark.
type BenchmarkComparison struct {
	UserConsumption      float64
	BenchmarkConsumption float64
	DifferencePercent    float64
	Season               Season
	HouseholdSize        int
	FloorAreaRange       string
}

// PeriodComparison reports day-normalized consumption against the
// immediately preceding comparable period.
type PeriodComparison struct {
	CurrentDailyRate  float64
	PreviousDailyRate float64
	ChangePercent     float64
	Direction         string // "increase" or "decrease"
	PreviousStart     string
	PreviousEnd       string
}

// AnalysisSummary is the full computed view of a household's consumption
// over a resolved analysis period.
type AnalysisSummary struct {
	TotalConsumption float64
	AverageDaily     float64
	CostTotal        float64
	BenchmarkDelta   float64 // percent; 0 when no benchmark matched
	Trend            []TrendPoint
	DeviceBreakdown  []DeviceUsage
	PeriodLabel      string
	PeriodDays       int
	StartDate        time.Time
	EndDate          time.Time
	Comparison       *PeriodComparison // nil when not applicable
}

// RecommendationCategory is the closed set of recommendation categories.
type RecommendationCategory string

const (
	RecDeviceUsage   RecommendationCategory = "device_usage"
	RecLifestyle     RecommendationCategory = "lifestyle"
	RecDeviceUpgrade RecommendationCategory = "device_upgrade"
	RecOther         RecommendationCategory = "other"
)

// Difficulty is the implementation difficulty of a recommendation.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// Origin tags recommendation provenance.
type Origin string

const (
	OriginRule     Origin = "rule"
	OriginAdvisory Origin = "advisory"
)

// Recommendation is a savings recommendation candidate. Title is the dedup
// key within one generated batch.
type Recommendation struct {
	Title             string
	Description       string
	Category          RecommendationCategory
	EstimatedSaving   float64 // energy units per month
	EstimatedCostSave float64 // currency per month
	Difficulty        Difficulty
	Origin            Origin
	DeviceID          string // empty when not device-linked
	PeriodLabel       string
	PeriodStart       time.Time
	PeriodEnd         time.Time
}

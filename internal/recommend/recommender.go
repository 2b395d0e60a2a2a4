// Package recommend reconciles rule-engine output with the optional
// advisory backend. Every failure mode degrades to a defined fallback; the
// caller always receives a non-empty ranked list.
package recommend

import (
	"context"
	"log"
	"sort"

	"wattwise/internal/advisor"
	"wattwise/internal/model"
	"wattwise/internal/rules"
)

// Backend is the two-phase advisory contract: analyze the household, then
// turn the resulting insight into raw recommendation items.
type Backend interface {
	Analyze(ctx context.Context, household advisor.HouseholdData, energy advisor.EnergyData) (*advisor.Insight, error)
	Recommend(ctx context.Context, insight *advisor.Insight) ([]advisor.RawItem, error)
}

// categoryLabels is the closed mapping from advisory category labels to the
// domain enum. Unknown labels fall through to "other".
var categoryLabels = map[string]model.RecommendationCategory{
	"device_usage":   model.RecDeviceUsage,
	"lifestyle":      model.RecLifestyle,
	"device_upgrade": model.RecDeviceUpgrade,
	"other":          model.RecOther,
}

// difficultyLabels is the closed mapping from advisory difficulty labels.
// Unknown labels fall through to "medium".
var difficultyLabels = map[string]model.Difficulty{
	"low":    model.DifficultyLow,
	"medium": model.DifficultyMedium,
	"high":   model.DifficultyHigh,
}

// Recommender wraps the rule engine with the advisory path. The backend is
// optional; a nil backend means rules only.
type Recommender struct {
	rules   *rules.Engine
	backend Backend
}

// New creates a recommender. backend may be nil.
func New(engine *rules.Engine, backend Backend) *Recommender {
	return &Recommender{rules: engine, backend: backend}
}

// Generate runs the deterministic rule engine only.
func (r *Recommender) Generate(summary model.AnalysisSummary, devices []model.Device, profile model.HouseholdProfile) []model.Recommendation {
	return r.rules.Generate(summary, devices, profile)
}

// GenerateAdvisory runs the advisory path with rule-engine fallback. It
// never returns an error and never returns an empty list.
func (r *Recommender) GenerateAdvisory(ctx context.Context, summary model.AnalysisSummary, devices []model.Device, profile model.HouseholdProfile) []model.Recommendation {
	if r.backend == nil {
		return r.rules.Generate(summary, devices, profile)
	}

	if summary.TotalConsumption <= 0 {
		log.Printf("recommend: consumption %.1f not analyzable, returning canned guidance", summary.TotalConsumption)
		return cannedInsufficientData(summary)
	}

	household, energy := buildPayload(summary, profile)

	insight, err := r.backend.Analyze(ctx, household, energy)
	if err != nil || insight == nil {
		log.Printf("recommend: advisory analysis failed, falling back to rules: %v", err)
		return r.rules.Generate(summary, devices, profile)
	}

	items, err := r.backend.Recommend(ctx, insight)
	if err != nil {
		log.Printf("recommend: advisory recommendations failed, falling back to rules: %v", err)
		return r.rules.Generate(summary, devices, profile)
	}

	advisoryRecs := make([]model.Recommendation, 0, len(items))
	for _, item := range items {
		rec, ok := mapItem(item, summary)
		if !ok {
			log.Printf("recommend: dropping unmappable advisory item %q", item.Title)
			continue
		}
		advisoryRecs = append(advisoryRecs, rec)
	}

	if len(advisoryRecs) == 0 {
		log.Print("recommend: advisory produced no usable items, falling back to rules")
		return r.rules.Generate(summary, devices, profile)
	}

	// Advisory first so dedup prefers advisory wording over rule wording.
	merged := append(advisoryRecs, r.rules.Generate(summary, devices, profile)...)
	return rank(merged)
}

// mapItem converts a raw advisory item into a Recommendation. Items without
// a title cannot be deduplicated or persisted and are rejected.
func mapItem(item advisor.RawItem, summary model.AnalysisSummary) (model.Recommendation, bool) {
	if item.Title == "" {
		return model.Recommendation{}, false
	}

	category, ok := categoryLabels[item.Category]
	if !ok {
		category = model.RecOther
	}
	difficulty, ok := difficultyLabels[item.Difficulty]
	if !ok {
		difficulty = model.DifficultyMedium
	}

	return model.Recommendation{
		Title:             item.Title,
		Description:       item.Description,
		Category:          category,
		EstimatedSaving:   item.Saving(),
		EstimatedCostSave: item.CostSaving(),
		Difficulty:        difficulty,
		Origin:            model.OriginAdvisory,
		PeriodLabel:       summary.PeriodLabel,
		PeriodStart:       summary.StartDate,
		PeriodEnd:         summary.EndDate,
	}, true
}

// rank deduplicates by exact title keeping the first occurrence, then sorts
// descending by estimated cost saving. The sort is stable so ties keep
// their merge order.
func rank(recs []model.Recommendation) []model.Recommendation {
	seen := make(map[string]struct{}, len(recs))
	unique := recs[:0]
	for _, rec := range recs {
		if _, dup := seen[rec.Title]; dup {
			continue
		}
		seen[rec.Title] = struct{}{}
		unique = append(unique, rec)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].EstimatedCostSave > unique[j].EstimatedCostSave
	})
	return unique
}

// buildPayload assembles the advisory request from the summary and profile.
func buildPayload(summary model.AnalysisSummary, profile model.HouseholdProfile) (advisor.HouseholdData, advisor.EnergyData) {
	household := advisor.HouseholdData{
		Name:        profile.Name,
		FamilySize:  profile.Size,
		FloorArea:   profile.FloorArea,
		Season:      string(model.SeasonOf(summary.EndDate)),
		PeriodLabel: summary.PeriodLabel,
		PeriodDays:  summary.PeriodDays,
		StartDate:   summary.StartDate.Format("2006-01-02"),
		EndDate:     summary.EndDate.Format("2006-01-02"),
	}
	energy := advisor.EnergyData{
		TotalConsumption: summary.TotalConsumption,
		AverageDaily:     summary.AverageDaily,
		CostTotal:        summary.CostTotal,
		BenchmarkDelta:   summary.BenchmarkDelta,
		DeviceBreakdown:  summary.DeviceBreakdown,
		Trend:            summary.Trend,
		Comparison:       summary.Comparison,
	}
	return household, energy
}

// cannedInsufficientData is the degraded response when there is nothing to
// analyze: structurally valid but empty or negative consumption.
func cannedInsufficientData(summary model.AnalysisSummary) []model.Recommendation {
	stamp := func(rec model.Recommendation) model.Recommendation {
		rec.Origin = model.OriginRule
		rec.PeriodLabel = summary.PeriodLabel
		rec.PeriodStart = summary.StartDate
		rec.PeriodEnd = summary.EndDate
		return rec
	}
	return []model.Recommendation{
		stamp(model.Recommendation{
			Title:       "Record more energy data",
			Description: "There is not enough consumption data for this period to analyze. Record meter readings regularly to unlock tailored advice.",
			Category:    model.RecOther,
			Difficulty:  model.DifficultyLow,
		}),
		stamp(model.Recommendation{
			Title:             "Everyday savings habits",
			Description:       "Switch lights off when leaving a room and avoid leaving appliances running unattended.",
			Category:          model.RecLifestyle,
			EstimatedSaving:   15,
			EstimatedCostSave: 7.5,
			Difficulty:        model.DifficultyLow,
		}),
	}
}

// Package energy is the service facade tying storage, analysis, and
// recommendation generation together. It exposes the operations callers
// consume: resolve an analysis, compare to benchmark, and generate
// recommendations with or without the advisory backend.
package energy

import (
	"context"
	"fmt"
	"time"

	"wattwise/internal/analysis"
	"wattwise/internal/config"
	"wattwise/internal/model"
	"wattwise/internal/period"
	"wattwise/internal/recommend"
	"wattwise/internal/rules"
	"wattwise/internal/store"
)

// Service orchestrates one household analysis per call. It holds no mutable
// state across calls; concurrent use is safe.
type Service struct {
	store *store.Store
	cfg   config.Config
	rec   *recommend.Recommender
	now   func() time.Time
}

// NewService creates the facade. backend may be nil for rules-only
// operation.
func NewService(st *store.Store, cfg config.Config, backend recommend.Backend) *Service {
	return &Service{
		store: st,
		cfg:   cfg,
		rec:   recommend.New(rules.NewEngine(cfg.Rules), backend),
		now:   time.Now,
	}
}

// ResolveAnalysis aggregates a household's readings over the resolved
// period into a full summary, enriched with the benchmark delta and the
// period-over-period comparison where applicable.
func (s *Service) ResolveAnalysis(householdID string, sel period.Selector, custom *period.Range) (model.AnalysisSummary, error) {
	summary, _, _, err := s.analyze(householdID, sel, custom)
	return summary, err
}

// CompareToBenchmark compares the household's trailing consumption against
// its cohort benchmark. target defaults to today. Returns nil (no error)
// when no benchmark record matches.
func (s *Service) CompareToBenchmark(householdID string, target *time.Time) (*model.BenchmarkComparison, error) {
	profile, ok, err := s.store.Household(householdID)
	if err != nil {
		return nil, fmt.Errorf("loading household: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("unknown household %q", householdID)
	}

	end := s.now()
	if target != nil {
		end = *target
	}
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	readings, err := s.store.ReadingsInRange(householdID, period.Range{
		Start: day.AddDate(0, 0, -30),
		End:   day,
	})
	if err != nil {
		return nil, fmt.Errorf("loading readings: %w", err)
	}

	return analysis.CompareBenchmark(readings, profile, day, s.store), nil
}

// GenerateRecommendations runs the deterministic rule engine over the
// resolved analysis.
func (s *Service) GenerateRecommendations(householdID string, sel period.Selector, custom *period.Range) ([]model.Recommendation, error) {
	summary, profile, devices, err := s.analyze(householdID, sel, custom)
	if err != nil {
		return nil, err
	}
	return s.rec.Generate(summary, devices, profile), nil
}

// GenerateAdvisoryRecommendations runs the advisory path. Advisory failures
// degrade to rule output inside the reconciler; the only errors returned
// here are invalid input and storage failures.
func (s *Service) GenerateAdvisoryRecommendations(ctx context.Context, householdID string, sel period.Selector, custom *period.Range) ([]model.Recommendation, error) {
	summary, profile, devices, err := s.analyze(householdID, sel, custom)
	if err != nil {
		return nil, err
	}
	return s.rec.GenerateAdvisory(ctx, summary, devices, profile), nil
}

// SaveRecommendations persists a generated batch, idempotent on title.
func (s *Service) SaveRecommendations(householdID string, recs []model.Recommendation) (int, error) {
	return s.store.SaveRecommendations(householdID, recs)
}

// analyze is the shared resolution path: resolve the period, load inputs,
// aggregate, and enrich.
func (s *Service) analyze(householdID string, sel period.Selector, custom *period.Range) (model.AnalysisSummary, model.HouseholdProfile, []model.Device, error) {
	var profile model.HouseholdProfile

	rng, err := period.Resolve(sel, custom, s.now())
	if err != nil {
		return model.AnalysisSummary{}, profile, nil, err
	}

	profile, ok, err := s.store.Household(householdID)
	if err != nil {
		return model.AnalysisSummary{}, profile, nil, fmt.Errorf("loading household: %w", err)
	}
	if !ok {
		return model.AnalysisSummary{}, profile, nil, fmt.Errorf("unknown household %q", householdID)
	}

	devices, err := s.store.DevicesByHousehold(householdID)
	if err != nil {
		return model.AnalysisSummary{}, profile, nil, fmt.Errorf("loading devices: %w", err)
	}

	// One widened fetch covers the analysis range, the preceding comparable
	// period, and the trailing-30-day benchmark window.
	fetch := rng
	if prev, ok := period.Previous(sel, rng); ok && prev.Start.Before(fetch.Start) {
		fetch.Start = prev.Start
	}
	if b := rng.End.AddDate(0, 0, -30); b.Before(fetch.Start) {
		fetch.Start = b
	}
	readings, err := s.store.ReadingsInRange(householdID, fetch)
	if err != nil {
		return model.AnalysisSummary{}, profile, nil, fmt.Errorf("loading readings: %w", err)
	}

	summary := analysis.Summarize(readings, devices, rng, sel)
	if cmp := analysis.CompareBenchmark(readings, profile, rng.End, s.store); cmp != nil {
		summary.BenchmarkDelta = cmp.DifferencePercent
	}
	summary.Comparison = analysis.ComparePeriods(readings, sel, rng)

	return summary, profile, devices, nil
}

package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wattwise/internal/advisor"
	"wattwise/internal/config"
	"wattwise/internal/model"
	"wattwise/internal/rules"
)

// stubBackend scripts the two advisory calls.
type stubBackend struct {
	insight    *advisor.Insight
	analyzeErr error

	items        []advisor.RawItem
	recommendErr error
}

func (s *stubBackend) Analyze(_ context.Context, _ advisor.HouseholdData, _ advisor.EnergyData) (*advisor.Insight, error) {
	return s.insight, s.analyzeErr
}

func (s *stubBackend) Recommend(_ context.Context, _ *advisor.Insight) ([]advisor.RawItem, error) {
	return s.items, s.recommendErr
}

func item(title, category string, costSaving float64) advisor.RawItem {
	raw, _ := json.Marshal(costSaving)
	return advisor.RawItem{
		Title:                title,
		Description:          "advisory guidance",
		Category:             category,
		Difficulty:           "low",
		EstimatedSaving:      raw,
		EstimatedCostSaving:  raw,
	}
}

func testRecommender(backend Backend) *Recommender {
	return New(rules.NewEngine(config.DefaultConfig().Rules), backend)
}

func analyzableSummary() model.AnalysisSummary {
	return model.AnalysisSummary{
		TotalConsumption: 310,
		AverageDaily:     10,
		PeriodLabel:      "Current month",
		PeriodDays:       31,
		StartDate:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateAdvisory_NilBackendUsesRules(t *testing.T) {
	recs := testRecommender(nil).GenerateAdvisory(context.Background(), analyzableSummary(), nil, model.HouseholdProfile{})
	if len(recs) == 0 {
		t.Fatal("expected rule fallback output")
	}
	for _, r := range recs {
		if r.Origin != model.OriginRule {
			t.Errorf("%q Origin = %q, want rule", r.Title, r.Origin)
		}
	}
}

func TestGenerateAdvisory_AnalyzeFailureFallsBack(t *testing.T) {
	backend := &stubBackend{analyzeErr: errors.New("backend down")}
	recs := testRecommender(backend).GenerateAdvisory(context.Background(), analyzableSummary(), nil, model.HouseholdProfile{})
	if len(recs) == 0 {
		t.Fatal("expected rule fallback output")
	}
	for _, r := range recs {
		if r.Origin == model.OriginAdvisory {
			t.Errorf("unexpected advisory item %q after analyze failure", r.Title)
		}
	}
}

func TestGenerateAdvisory_RecommendFailureFallsBack(t *testing.T) {
	backend := &stubBackend{
		insight:      &advisor.Insight{},
		recommendErr: errors.New("rate limited"),
	}
	recs := testRecommender(backend).GenerateAdvisory(context.Background(), analyzableSummary(), nil, model.HouseholdProfile{})
	for _, r := range recs {
		if r.Origin == model.OriginAdvisory {
			t.Errorf("unexpected advisory item %q after recommend failure", r.Title)
		}
	}
}

func TestGenerateAdvisory_ZeroConsumptionCanned(t *testing.T) {
	backend := &stubBackend{insight: &advisor.Insight{}}
	sum := analyzableSummary()
	sum.TotalConsumption = 0

	recs := testRecommender(backend).GenerateAdvisory(context.Background(), sum, nil, model.HouseholdProfile{})
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2 canned recommendations", len(recs))
	}
	if recs[0].Title != "Record more energy data" {
		t.Errorf("first = %q, want data-recording guidance", recs[0].Title)
	}
}

func TestGenerateAdvisory_MergeDedupeAndRank(t *testing.T) {
	backend := &stubBackend{
		insight: &advisor.Insight{},
		items: []advisor.RawItem{
			// Shares a title with a universal rule recommendation; the
			// advisory wording must win.
			item("Switch to LED lighting", "device_upgrade", 3),
			item("Insulate the attic", "other", 40),
		},
	}

	recs := testRecommender(backend).GenerateAdvisory(context.Background(), analyzableSummary(), nil, model.HouseholdProfile{})

	var ledCount int
	for _, r := range recs {
		if r.Title == "Switch to LED lighting" {
			ledCount++
			if r.Origin != model.OriginAdvisory {
				t.Errorf("dedup kept %q origin, want advisory", r.Origin)
			}
		}
	}
	if ledCount != 1 {
		t.Errorf("LED recommendation appears %d times, want 1", ledCount)
	}

	if recs[0].Title != "Insulate the attic" {
		t.Errorf("first = %q, want highest cost saving first", recs[0].Title)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].EstimatedCostSave > recs[i-1].EstimatedCostSave {
			t.Errorf("ranking not descending at %d: %v > %v", i, recs[i].EstimatedCostSave, recs[i-1].EstimatedCostSave)
		}
	}
}

func TestGenerateAdvisory_UnmappableItemsDropped(t *testing.T) {
	backend := &stubBackend{
		insight: &advisor.Insight{},
		items: []advisor.RawItem{
			{Title: "", Description: "no title"},
		},
	}

	recs := testRecommender(backend).GenerateAdvisory(context.Background(), analyzableSummary(), nil, model.HouseholdProfile{})
	// The only advisory item is unusable, so rules take over entirely.
	for _, r := range recs {
		if r.Origin == model.OriginAdvisory {
			t.Errorf("unexpected advisory item %q", r.Title)
		}
	}
}

func TestMapItem_UnknownLabels(t *testing.T) {
	raw := item("Try something", "mystery_category", 5)
	raw.Difficulty = "impossible"

	rec, ok := mapItem(raw, analyzableSummary())
	if !ok {
		t.Fatal("expected a mapped item")
	}
	if rec.Category != model.RecOther {
		t.Errorf("Category = %q, want other", rec.Category)
	}
	if rec.Difficulty != model.DifficultyMedium {
		t.Errorf("Difficulty = %q, want medium", rec.Difficulty)
	}
	if rec.Origin != model.OriginAdvisory {
		t.Errorf("Origin = %q, want advisory", rec.Origin)
	}
}

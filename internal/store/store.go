// Package store provides SQLite-backed persistence for households, devices,
// readings, benchmarks, and recommendations.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver

	"wattwise/internal/model"
	"wattwise/internal/period"
)

const dateFormat = "2006-01-02"

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveHousehold inserts or replaces a household profile.
func (s *Store) SaveHousehold(h model.HouseholdProfile) error {
	var area any
	if h.HasFloorArea {
		area = h.FloorArea
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO households
		(household_id, name, household_size, floor_area, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Size, area, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Household loads one household profile by ID.
func (s *Store) Household(id string) (model.HouseholdProfile, bool, error) {
	var h model.HouseholdProfile
	var area sql.NullFloat64

	err := s.db.QueryRow(`SELECT household_id, name, household_size, floor_area
		FROM households WHERE household_id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Size, &area)
	if err == sql.ErrNoRows {
		return h, false, nil
	}
	if err != nil {
		return h, false, err
	}

	if area.Valid {
		h.FloorArea = area.Float64
		h.HasFloorArea = true
	}
	return h, true, nil
}

// Households lists all stored household profiles, ordered by name.
func (s *Store) Households() ([]model.HouseholdProfile, error) {
	rows, err := s.db.Query(`SELECT household_id, name, household_size, floor_area
		FROM households ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.HouseholdProfile
	for rows.Next() {
		var h model.HouseholdProfile
		var area sql.NullFloat64
		if err := rows.Scan(&h.ID, &h.Name, &h.Size, &area); err != nil {
			return nil, err
		}
		if area.Valid {
			h.FloorArea = area.Float64
			h.HasFloorArea = true
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// SaveDevice inserts or replaces a device.
func (s *Store) SaveDevice(d model.Device) error {
	active := 0
	if d.Active {
		active = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO devices
		(device_id, household_id, name, category, power_rating, daily_hours, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.HouseholdID, d.Name, string(d.Category), d.PowerRating, d.DailyHours, active)
	return err
}

// DevicesByHousehold lists a household's devices, ordered by device ID for
// stable downstream output.
func (s *Store) DevicesByHousehold(householdID string) ([]model.Device, error) {
	rows, err := s.db.Query(`SELECT device_id, household_id, name, category, power_rating, daily_hours, active
		FROM devices WHERE household_id = ? ORDER BY device_id`, householdID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Device
	for rows.Next() {
		var d model.Device
		var category string
		var active int
		if err := rows.Scan(&d.ID, &d.HouseholdID, &d.Name, &category, &d.PowerRating, &d.DailyHours, &active); err != nil {
			return nil, err
		}
		d.Category = model.DeviceCategory(category)
		d.Active = active != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

// SaveReading appends one reading.
func (s *Store) SaveReading(r model.Reading) error {
	var deviceID any
	if r.DeviceID != "" {
		deviceID = r.DeviceID
	}
	var cost any
	if r.HasCost {
		cost = r.Cost
	}
	_, err := s.db.Exec(`INSERT INTO readings
		(household_id, device_id, value, kind, reading_date, cost)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.HouseholdID, deviceID, r.Value, string(r.Kind), r.Date.UTC().Format(dateFormat), cost)
	return err
}

// ReadingsInRange loads a household's readings whose date falls inside the
// inclusive range, all kinds, ordered by date.
func (s *Store) ReadingsInRange(householdID string, rng period.Range) ([]model.Reading, error) {
	rows, err := s.db.Query(`SELECT household_id, device_id, value, kind, reading_date, cost
		FROM readings
		WHERE household_id = ? AND reading_date >= ? AND reading_date <= ?
		ORDER BY reading_date, reading_id`,
		householdID, rng.Start.Format(dateFormat), rng.End.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Reading
	for rows.Next() {
		var r model.Reading
		var deviceID sql.NullString
		var kind, dateStr string
		var cost sql.NullFloat64

		if err := rows.Scan(&r.HouseholdID, &deviceID, &r.Value, &kind, &dateStr, &cost); err != nil {
			return nil, err
		}
		if deviceID.Valid {
			r.DeviceID = deviceID.String
		}
		r.Kind = model.ReadingKind(kind)
		r.Date, _ = time.Parse(dateFormat, dateStr)
		if cost.Valid {
			r.Cost = cost.Float64
			r.HasCost = true
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveBenchmark inserts or replaces a benchmark record.
func (s *Store) SaveBenchmark(b model.BenchmarkRecord) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO benchmarks
		(household_size, floor_area_range, season, average_consumption)
		VALUES (?, ?, ?, ?)`,
		b.HouseholdSize, b.FloorAreaRange, string(b.Season), b.AverageConsumption)
	return err
}

// LookupBenchmark finds the exact cohort record. No interpolation between
// neighboring cohorts.
func (s *Store) LookupBenchmark(size int, areaRange string, season model.Season) (model.BenchmarkRecord, bool, error) {
	var b model.BenchmarkRecord
	var seasonStr string

	err := s.db.QueryRow(`SELECT household_size, floor_area_range, season, average_consumption
		FROM benchmarks WHERE household_size = ? AND floor_area_range = ? AND season = ?`,
		size, areaRange, string(season)).
		Scan(&b.HouseholdSize, &b.FloorAreaRange, &seasonStr, &b.AverageConsumption)
	if err == sql.ErrNoRows {
		return b, false, nil
	}
	if err != nil {
		return b, false, err
	}

	b.Season = model.Season(seasonStr)
	return b, true, nil
}

// SavedRecommendation is a persisted recommendation with its storage
// metadata.
type SavedRecommendation struct {
	ID          string
	HouseholdID string
	Implemented bool
	CreatedAt   time.Time
	model.Recommendation
}

// SaveRecommendations persists a generated batch for one household,
// idempotent on (household, title): titles already on record are skipped.
// Returns the number of newly stored recommendations.
func (s *Store) SaveRecommendations(householdID string, recs []model.Recommendation) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	saved := 0
	for _, rec := range recs {
		var deviceID any
		if rec.DeviceID != "" {
			deviceID = rec.DeviceID
		}
		res, err := tx.Exec(`INSERT OR IGNORE INTO recommendations
			(recommendation_id, household_id, title, description, category,
			 estimated_saving, estimated_cost_saving, difficulty, origin,
			 device_id, period_label, period_start, period_end, implemented, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
			uuid.NewString(), householdID, rec.Title, rec.Description, string(rec.Category),
			rec.EstimatedSaving, rec.EstimatedCostSave, string(rec.Difficulty), string(rec.Origin),
			deviceID, rec.PeriodLabel, rec.PeriodStart.Format(dateFormat), rec.PeriodEnd.Format(dateFormat), now)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		saved += int(n)
	}

	return saved, tx.Commit()
}

// RecommendationsByHousehold lists persisted recommendations, newest first.
func (s *Store) RecommendationsByHousehold(householdID string) ([]SavedRecommendation, error) {
	rows, err := s.db.Query(`SELECT recommendation_id, title, description, category,
		estimated_saving, estimated_cost_saving, difficulty, origin,
		device_id, period_label, implemented, created_at
		FROM recommendations WHERE household_id = ?
		ORDER BY created_at DESC, title`, householdID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []SavedRecommendation
	for rows.Next() {
		var sr SavedRecommendation
		var category, difficulty, origin string
		var deviceID, periodLabel sql.NullString
		var implemented int
		var createdStr string

		err := rows.Scan(&sr.ID, &sr.Title, &sr.Description, &category,
			&sr.EstimatedSaving, &sr.EstimatedCostSave, &difficulty, &origin,
			&deviceID, &periodLabel, &implemented, &createdStr)
		if err != nil {
			return nil, err
		}

		sr.Category = model.RecommendationCategory(category)
		sr.Difficulty = model.Difficulty(difficulty)
		sr.Origin = model.Origin(origin)
		if deviceID.Valid {
			sr.DeviceID = deviceID.String
		}
		if periodLabel.Valid {
			sr.PeriodLabel = periodLabel.String
		}
		sr.Implemented = implemented != 0
		sr.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		sr.HouseholdID = householdID
		out = append(out, sr)
	}
	return out, rows.Err()
}

// MarkImplemented flags a stored recommendation as implemented. Accepts a
// full ID or a unique prefix.
func (s *Store) MarkImplemented(recommendationID string) error {
	if recommendationID == "" {
		return fmt.Errorf("recommendation id required")
	}
	res, err := s.db.Exec(`UPDATE recommendations SET implemented = 1
		WHERE recommendation_id LIKE ? || '%'`, recommendationID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no recommendation matching %q", recommendationID)
	}
	return nil
}

// Package model defines domain types for wattwise households, devices, and readings.
package model

import "time"

// ReadingKind distinguishes whole-home meter readings from per-device readings.
type ReadingKind string

const (
	ReadingTotal  ReadingKind = "total"
	ReadingDevice ReadingKind = "device"
)

// DeviceCategory is the closed set of appliance categories.
type DeviceCategory string

const (
	CategoryClimateControl DeviceCategory = "climate_control"
	CategoryRefrigeration  DeviceCategory = "refrigeration"
	CategoryEntertainment  DeviceCategory = "entertainment"
	CategoryLaundry        DeviceCategory = "laundry"
	CategoryWaterHeating   DeviceCategory = "water_heating"
	CategoryLighting       DeviceCategory = "lighting"
	CategoryComputing      DeviceCategory = "computing"
	CategoryOtherDevice    DeviceCategory = "other"
)

// Season is derived from the calendar month of a target date.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// SeasonOf maps a date to its season: Mar-May spring, Jun-Aug summer,
// Sep-Nov autumn, Dec-Feb winter.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Autumn
	default:
		return Winter
	}
}

// Reading is a single energy reading. Immutable once aggregated over.
type Reading struct {
	HouseholdID string
	DeviceID    string // empty for total-kind readings
	Value       float64
	Kind        ReadingKind
	Date        time.Time
	Cost        float64
	HasCost     bool
}

// Device is one appliance in a household's inventory.
type Device struct {
	ID          string
	HouseholdID string
	Name        string
	Category    DeviceCategory
	PowerRating float64 // watts
	DailyHours  float64
	Active      bool
}

// HouseholdProfile describes the household under analysis.
// FloorArea is in square meters; zero with HasFloorArea false means unknown.
type HouseholdProfile struct {
	ID           string
	Name         string
	Size         int
	FloorArea    float64
	HasFloorArea bool
}

// BenchmarkRecord is reference average monthly consumption for a cohort.
type BenchmarkRecord struct {
	HouseholdSize      int
	FloorAreaRange     string
	Season             Season
	AverageConsumption float64
}

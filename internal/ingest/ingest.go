// Package ingest imports meter readings from JSONL export files. One JSON
// object per line; malformed lines are counted and skipped rather than
// aborting the import.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"wattwise/internal/model"
)

// rawReading is the wire form of one exported reading. Exports from older
// tooling write value and cost as strings, so both are accepted.
type rawReading struct {
	HouseholdID string          `json:"household_id"`
	DeviceID    string          `json:"device_id"`
	Kind        string          `json:"kind"`
	Value       json.RawMessage `json:"value"`
	Date        string          `json:"date"`
	Cost        json.RawMessage `json:"cost"`
}

// Result summarizes one import run.
type Result struct {
	Imported    int
	Skipped     int
	ParseErrors int
}

// Sink receives parsed readings. *store.Store satisfies this.
type Sink interface {
	SaveReading(r model.Reading) error
}

// ImportFile streams a JSONL file into the sink. householdID overrides the
// per-line household when non-empty.
func ImportFile(path, householdID string, sink Sink) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Import(f, householdID, sink)
}

// Import reads JSONL from r and saves each valid reading.
func Import(r io.Reader, householdID string, sink Sink) (Result, error) {
	var res Result

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw rawReading
		if err := json.Unmarshal(line, &raw); err != nil {
			res.ParseErrors++
			continue
		}

		reading, ok := convert(raw, householdID)
		if !ok {
			res.Skipped++
			continue
		}
		if err := sink.SaveReading(reading); err != nil {
			return res, fmt.Errorf("saving reading: %w", err)
		}
		res.Imported++
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("reading import stream: %w", err)
	}
	return res, nil
}

// convert validates one raw record and builds the reading. Records without
// a household, a parseable date, or a parseable value are skipped.
func convert(raw rawReading, householdID string) (model.Reading, bool) {
	hid := householdID
	if hid == "" {
		hid = raw.HouseholdID
	}
	if hid == "" {
		return model.Reading{}, false
	}

	date, ok := parseDate(raw.Date)
	if !ok {
		return model.Reading{}, false
	}

	value, ok := parseNumber(raw.Value)
	if !ok || value < 0 {
		return model.Reading{}, false
	}

	kind := model.ReadingTotal
	if raw.Kind == string(model.ReadingDevice) || raw.DeviceID != "" {
		kind = model.ReadingDevice
	}
	if kind == model.ReadingDevice && raw.DeviceID == "" {
		return model.Reading{}, false
	}

	reading := model.Reading{
		HouseholdID: hid,
		DeviceID:    raw.DeviceID,
		Kind:        kind,
		Value:       value,
		Date:        date,
	}
	if cost, ok := parseNumber(raw.Cost); ok {
		reading.Cost = cost
		reading.HasCost = true
	}
	return reading, true
}

// dateFormats in preference order.
var dateFormats = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseNumber accepts a JSON number or a quoted number string.
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &v); err == nil {
			return v, true
		}
	}
	return 0, false
}

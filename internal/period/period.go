// Package period resolves abstract analysis-period selectors into concrete
// inclusive date ranges and derives the preceding comparable period.
package period

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned for a custom selector with missing or
// inverted bounds. It is the only period error surfaced to callers.
var ErrInvalidRange = errors.New("period: invalid custom range")

// Selector names an analysis window.
type Selector string

const (
	CurrentCycle  Selector = "current-cycle"
	PreviousCycle Selector = "previous-cycle"
	Trailing3     Selector = "trailing-3"
	Trailing6     Selector = "trailing-6"
	YearToDate    Selector = "year-to-date"
	Custom        Selector = "custom"
)

// Granularity selects the trend bucket size for a resolved period.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Range is an inclusive [Start, End] date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive length of the range in days, never below 1
// for a valid range.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// normalize maps any unrecognized selector to the current cycle. The
// original system silently defaulted rather than rejecting; kept for parity.
func normalize(sel Selector) Selector {
	switch sel {
	case CurrentCycle, PreviousCycle, Trailing3, Trailing6, YearToDate, Custom:
		return sel
	default:
		return CurrentCycle
	}
}

// midnight truncates a time to its calendar date in UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve maps a selector to a concrete date range relative to now.
// custom is consulted only for the custom selector and must have
// Start <= End, both set.
func Resolve(sel Selector, custom *Range, now time.Time) (Range, error) {
	today := midnight(now)

	switch normalize(sel) {
	case Custom:
		if custom == nil || custom.Start.IsZero() || custom.End.IsZero() {
			return Range{}, fmt.Errorf("%w: both bounds required", ErrInvalidRange)
		}
		start, end := midnight(custom.Start), midnight(custom.End)
		if start.After(end) {
			return Range{}, fmt.Errorf("%w: start %s after end %s",
				ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
		return Range{Start: start, End: end}, nil
	case PreviousCycle:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{
			Start: firstOfMonth.AddDate(0, -1, 0),
			End:   firstOfMonth.AddDate(0, 0, -1),
		}, nil
	case Trailing3:
		return Range{Start: today.AddDate(0, 0, -90), End: today}, nil
	case Trailing6:
		return Range{Start: today.AddDate(0, 0, -180), End: today}, nil
	case YearToDate:
		return Range{Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	default: // CurrentCycle
		return Range{
			Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
			End:   today,
		}, nil
	}
}

// Previous derives the immediately preceding period of the same kind.
// Returns false for year-to-date and custom, where no comparable
// predecessor is defined.
func Previous(sel Selector, cur Range) (Range, bool) {
	switch normalize(sel) {
	case CurrentCycle, PreviousCycle:
		firstOfMonth := time.Date(cur.Start.Year(), cur.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{
			Start: firstOfMonth.AddDate(0, -1, 0),
			End:   firstOfMonth.AddDate(0, 0, -1),
		}, true
	case Trailing3:
		return Range{Start: cur.Start.AddDate(0, 0, -90), End: cur.Start.AddDate(0, 0, -1)}, true
	case Trailing6:
		return Range{Start: cur.Start.AddDate(0, 0, -180), End: cur.Start.AddDate(0, 0, -1)}, true
	default:
		return Range{}, false
	}
}

// GranularityFor returns the trend bucket size for a selector: daily for
// calendar cycles, weekly for trailing windows, monthly otherwise.
func GranularityFor(sel Selector) Granularity {
	switch normalize(sel) {
	case CurrentCycle, PreviousCycle:
		return Daily
	case Trailing3, Trailing6:
		return Weekly
	default:
		return Monthly
	}
}

// Label returns a human-readable description of the selector.
func Label(sel Selector) string {
	switch normalize(sel) {
	case PreviousCycle:
		return "Previous month"
	case Trailing3:
		return "Last 3 months"
	case Trailing6:
		return "Last 6 months"
	case YearToDate:
		return "Year to date"
	case Custom:
		return "Custom range"
	default:
		return "Current month"
	}
}

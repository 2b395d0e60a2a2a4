// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatEnergy formats a kWh value with a unit suffix.
// e.g., 1234.5 -> "1,235 kWh", 12.34 -> "12.3 kWh"
func FormatEnergy(kwh float64) string {
	abs := math.Abs(kwh)
	switch {
	case abs >= 1000:
		return FormatNumber(int64(math.Round(kwh))) + " kWh"
	case abs >= 100:
		return fmt.Sprintf("%.0f kWh", kwh)
	default:
		return fmt.Sprintf("%.1f kWh", kwh)
	}
}

// FormatCost formats a currency cost value.
func FormatCost(cost float64) string {
	if cost >= 1000 {
		return "$" + FormatNumber(int64(math.Round(cost)))
	}
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	}
	if cost >= 10 {
		return fmt.Sprintf("$%.1f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value that is already on a 0-100 scale.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent formats a percentage with an explicit sign.
// e.g., 12.5 -> "+12.5%", -3.2 -> "-3.2%"
func FormatSignedPercent(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatShare formats a fraction of a total as a percentage.
// Returns "-" when the total is zero.
func FormatShare(part, total float64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", part/total*100)
}

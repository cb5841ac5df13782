// Package pricing derives appointment amounts from clinic and visit type.
package pricing

import (
	"math"
	"strings"
)

// DefaultBasePrice is charged for any clinic without a table entry.
const DefaultBasePrice = 100000

var basePrices = map[string]int64{
	"neurology": 90000,
	"ent":       120000,
	"emergency": 100000,
}

var multipliers = map[string]float64{
	"New":       1.0,
	"Follow-up": 0.8,
	"Emergency": 1.5,
}

// Amount returns the price for an appointment, rounded to the nearest
// currency unit. Clinic names match case-insensitively; the type string
// matches exactly. Unknown clinics fall back to DefaultBasePrice and
// unknown types to a 1.0 multiplier, with no error.
func Amount(clinic, appointmentType string) int64 {
	base, ok := basePrices[strings.ToLower(clinic)]
	if !ok {
		base = DefaultBasePrice
	}

	multiplier, ok := multipliers[appointmentType]
	if !ok {
		multiplier = 1.0
	}

	return int64(math.Round(float64(base) * multiplier))
}

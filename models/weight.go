package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WeightUnits are the units offered on the entry form.
var WeightUnits = []string{"kg", "quintal"}

// FormatWeight joins a weight value and unit into the stored "value unit" form.
func FormatWeight(value, unit string) string {
	value, unit = trim(value), trim(unit)
	if value != "" && unit != "" {
		return value + " " + unit
	}
	return value
}

// ParseWeight splits a stored weight back into value and unit. An empty
// weight is allowed and returns empty parts.
func ParseWeight(s string) (value, unit string, err error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return "", "", nil
	case 1, 2:
	default:
		return "", "", &ValidationError{Field: "weight", Reason: "expected \"value unit\", got " + quote(s)}
	}
	if _, perr := decimal.NewFromString(fields[0]); perr != nil {
		return "", "", &ValidationError{Field: "weight", Reason: "weight value " + quote(fields[0]) + " is not a number"}
	}
	if len(fields) == 1 {
		return fields[0], "", nil
	}
	for _, u := range WeightUnits {
		if fields[1] == u {
			return fields[0], u, nil
		}
	}
	return "", "", &ValidationError{Field: "weight", Reason: "unknown weight unit " + quote(fields[1])}
}

// ParseAmount parses a money amount typed by the clerk. It must be a finite,
// non-negative number.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = trim(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: quote(s) + " is not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return d, nil
}

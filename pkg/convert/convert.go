// Copyright (c) 2026 Agrio India. All rights reserved.

// Package convert holds fault-tolerant string conversions for places like
// query-parameter parsing where a zero value is an acceptable answer to
// malformed input. When telling "absent" apart from "invalid" matters,
// use [strconv] directly instead.
package convert

import "strconv"

// ToInt parses an integer, returning 0 for empty or malformed input.
func ToInt(raw string) int {
	if raw == "" {
		return 0
	}

	value, _ := strconv.Atoi(raw)
	return value
}

// ToIntD parses an integer, returning fallback for empty or malformed input.
func ToIntD(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	if value, err := strconv.Atoi(raw); err == nil {
		return value
	}

	return fallback
}

// ToBool parses a boolean ("true"/"1"/"false"/"0"), returning false for
// empty or malformed input.
func ToBool(raw string) bool {
	if raw == "" {
		return false
	}

	value, _ := strconv.ParseBool(raw)
	return value
}

// ToFloat64 parses a float, returning 0 for empty or malformed input.
func ToFloat64(raw string) float64 {
	if raw == "" {
		return 0
	}

	value, _ := strconv.ParseFloat(raw, 64)
	return value
}

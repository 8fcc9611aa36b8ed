// Package query parses loosely-typed URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses a slice of string values from URL query parameters
// into a slice of integers. Entries that are not numbers are dropped.
func IntSlice(values []string) []int {
	var result []int
	for _, value := range values {
		if parsed, err := strconv.Atoi(value); err == nil {
			result = append(result, parsed)
		}
	}
	return result
}

// StringSlice parses a single comma-separated query value, such as
// ?season=kharif,rabi, into a trimmed slice of strings.
func StringSlice(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		clean := strings.TrimSpace(part)
		if clean != "" {
			result = append(result, clean)
		}
	}
	return result
}

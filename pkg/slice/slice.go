// Copyright (c) 2026 Agrio India. All rights reserved.

// Package slice adds the generic transforms the standard [slices] package
// leaves out: Map, Filter and Reduce.
package slice

// Map applies transform to every element, producing a new slice of the
// results. A nil input stays nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	output := make([]U, len(input))
	for i, element := range input {
		output[i] = transform(element)
	}

	return output
}

// Filter keeps the elements for which keep returns true. A nil input stays
// nil. The output is not pre-sized, so a heavy filter allocates only what it
// keeps.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}

	var output []T
	for _, element := range input {
		if keep(element) {
			output = append(output, element)
		}
	}

	return output
}

// Reduce folds the slice into a single value, starting from initial.
func Reduce[T any, U any](input []T, initial U, fold func(accumulator U, element T) U) U {
	result := initial
	for _, element := range input {
		result = fold(result, element)
	}
	return result
}

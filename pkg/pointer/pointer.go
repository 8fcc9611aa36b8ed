// Copyright (c) 2026 Agrio India. All rights reserved.

// Package pointer removes the boilerplate around optional values: taking the
// address of a literal, and dereferencing possibly-nil pointers safely.
package pointer

// To returns a pointer to value. Handy for filling optional struct fields
// from literals, e.g. pointer.To(time.Now()).
func To[T any](value T) *T {
	return &value
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

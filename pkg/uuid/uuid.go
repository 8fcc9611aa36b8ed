// Copyright (c) 2026 Agrio India. All rights reserved.

// Package uuid generates the platform's primary-key identifiers.
//
// All IDs are UUID version 7: time-ordered, so consecutive inserts land
// near each other in the B-tree instead of fragmenting it, while remaining
// ordinary 128-bit values for the postgres uuid type.
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string.
//
// Generation only fails when the system entropy source does, which is not a
// condition the application can recover from, so it panics.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: generation failed: " + err.Error())
	}

	return id.String()
}

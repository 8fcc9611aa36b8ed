// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package distributor implements the dealer locator domain.

Farmers find the nearest authorized dealer either by PIN code or by device
coordinates with a search radius.
*/
package distributor

import "time"

// # Domain Entities

// Distributor represents an authorized dealer outlet.
type Distributor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	PinCode   string  `json:"pin_code"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// DistanceKm is populated only on radius searches.
	DistanceKm float64 `json:"distance_km,omitempty"`

	IsActive  bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// # Search Constraints

const (
	// DefaultRadiusKm is applied when a radius search omits the radius.
	DefaultRadiusKm = 25.0

	// MaxRadiusKm caps radius searches to keep result sets bounded.
	MaxRadiusKm = 200.0

	// MaxResults caps any locator response.
	MaxResults = 50
)

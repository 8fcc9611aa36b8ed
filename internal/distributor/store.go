// Copyright (c) 2026 Agrio India. All rights reserved.

package distributor

import "context"

// Repository defines the data access contract for dealer outlets.
type Repository interface {

	/*
		FindByPinCode returns active dealers registered under a PIN code.

		Parameters:
		  - context: context.Context
		  - pinCode: string
		  - limit: int

		Returns:
		  - []*Distributor: Matching outlets
		  - error: Database retrieval failures
	*/
	FindByPinCode(context context.Context, pinCode string, limit int) ([]*Distributor, error)

	/*
		FindWithinRadius returns active dealers within radiusKm of a point,
		nearest first, with DistanceKm populated.

		Parameters:
		  - context: context.Context
		  - latitude: float64
		  - longitude: float64
		  - radiusKm: float64
		  - limit: int

		Returns:
		  - []*Distributor: Matching outlets ordered by distance
		  - error: Database retrieval failures
	*/
	FindWithinRadius(context context.Context, latitude, longitude, radiusKm float64, limit int) ([]*Distributor, error)
}

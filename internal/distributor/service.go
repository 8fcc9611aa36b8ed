// Copyright (c) 2026 Agrio India. All rights reserved.

package distributor

import (
	"context"

	"github.com/agrioindia/platform/internal/platform/apperr"
)

// Service implements dealer locator use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
LocateByPinCode returns dealers registered under a PIN code.

Parameters:
  - context: context.Context
  - pinCode: string

Returns:
  - []*Distributor: Matching outlets
  - err: Storage failures
*/
func (service *Service) LocateByPinCode(context context.Context, pinCode string) ([]*Distributor, error) {
	return service.repository.FindByPinCode(context, pinCode, MaxResults)
}

/*
LocateNearby returns dealers within a radius of the given coordinates.

Description: A zero radius falls back to DefaultRadiusKm; anything beyond
MaxRadiusKm is rejected rather than silently clamped, so the caller learns
their request was out of range.

Parameters:
  - context: context.Context
  - latitude: float64
  - longitude: float64
  - radiusKm: float64

Returns:
  - []*Distributor: Matching outlets ordered by distance
  - err: ValidationError or storage failures
*/
func (service *Service) LocateNearby(context context.Context, latitude, longitude, radiusKm float64) ([]*Distributor, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, apperr.ValidationError("Coordinates are out of range")
	}

	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm < 0 || radiusKm > MaxRadiusKm {
		return nil, apperr.ValidationError("Search radius is out of range")
	}

	return service.repository.FindWithinRadius(context, latitude, longitude, radiusKm, MaxResults)
}

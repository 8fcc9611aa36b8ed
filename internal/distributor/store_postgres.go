// Copyright (c) 2026 Agrio India. All rights reserved.

package distributor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/database/schema"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const distributorColumns = `
	id, name, address, city, state, pincode, phone, latitude, longitude`

func collectDistributors(rows pgx.Rows, withDistance bool) ([]*Distributor, error) {
	defer rows.Close()

	dealers := []*Distributor{}
	for rows.Next() {
		dealer := &Distributor{IsActive: true}
		targets := []any{
			&dealer.ID,
			&dealer.Name,
			&dealer.Address,
			&dealer.City,
			&dealer.State,
			&dealer.PinCode,
			&dealer.Phone,
			&dealer.Latitude,
			&dealer.Longitude,
		}
		if withDistance {
			targets = append(targets, &dealer.DistanceKm)
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("postgres_distributor_repo_scan_failed: %w", err)
		}
		dealers = append(dealers, dealer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_distributor_repo_rows_failed: %w", err)
	}

	return dealers, nil
}

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
func (repository *PostgresRepository) FindByPinCode(context context.Context, pinCode string, limit int) ([]*Distributor, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE pincode = $1 AND isactive = TRUE
		ORDER BY name ASC
		LIMIT $2`,
		distributorColumns, schema.CatalogDistributor.Table,
	)

	rows, err := repository.pool.Query(context, query, pinCode, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_distributor_repo_find_by_pincode_failed: %w", err)
	}

	return collectDistributors(rows, false)
}

/*
FindWithinRadius returns active dealers within radiusKm of a point.

Description: Distance is computed with the haversine formula directly in SQL
(earth radius 6371 km), so ordering and the radius cut both happen in the
database rather than in application memory.

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
func (repository *PostgresRepository) FindWithinRadius(context context.Context, latitude, longitude, radiusKm float64, limit int) ([]*Distributor, error) {
	query := fmt.Sprintf(`
		SELECT %s, distance_km
		FROM (
			SELECT %s,
				6371 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS(latitude - $1) / 2), 2) +
					COS(RADIANS($1)) * COS(RADIANS(latitude)) *
					POWER(SIN(RADIANS(longitude - $2) / 2), 2)
				)) AS distance_km
			FROM %s
			WHERE isactive = TRUE
		) nearby
		WHERE distance_km <= $3
		ORDER BY distance_km ASC
		LIMIT $4`,
		distributorColumns, distributorColumns, schema.CatalogDistributor.Table,
	)

	rows, err := repository.pool.Query(context, query, latitude, longitude, radiusKm, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_distributor_repo_find_within_radius_failed: %w", err)
	}

	return collectDistributors(rows, true)
}
